package ble

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesFilter(t *testing.T) {
	assert.True(t, matchesFilter("M5Atom-MCP3424 BLE Sender"))
	assert.True(t, matchesFilter("M5Atom-MCP3424 BLE Sender rev2"))

	// Anything else is skipped, never connected to.
	assert.False(t, matchesFilter("Other Device"))
	assert.False(t, matchesFilter(""))
	assert.False(t, matchesFilter("M5Atom"))
}
