package uart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineBufferReassemblesPartialReads(t *testing.T) {
	var b lineBuffer

	assert.Empty(t, b.feed([]byte("cur, 10")))
	assert.Equal(t, []string{"cur, 1000"}, b.feed([]byte("00\ncur, ")))
	assert.Equal(t, []string{"cur, 500"}, b.feed([]byte("500\n")))
}

func TestLineBufferSplitsMultipleRecords(t *testing.T) {
	var b lineBuffer

	records := b.feed([]byte("cur, 1000\r\ncur, 500\r\ncur"))
	assert.Equal(t, []string{"cur, 1000\r", "cur, 500\r"}, records)

	// The trailing partial record stays pending.
	assert.Equal(t, []string{"cur, 42"}, b.feed([]byte(", 42\n")))
}
