package sink

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entryPattern = regexp.MustCompile(
	`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}[^,]*, 1000, 6\.9503105590062105e-06$`)

func TestWriterAppendsTimestampedEntries(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir, false)
	require.NoError(t, err)

	require.NoError(t, w.Emit("1000, 6.9503105590062105e-06"))
	require.NoError(t, w.Emit("1000, 6.9503105590062105e-06"))
	require.NoError(t, w.Close())

	assert.Regexp(t, `current_\d{8}_\d{6}_.+\.txt$`, w.Path())

	data, err := os.ReadFile(w.Path())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Regexp(t, entryPattern, line)
	}
}

func TestWriterCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs", "current")

	w, err := New(dir, false)
	require.NoError(t, err)
	defer w.Close()

	assert.DirExists(t, dir)
	assert.FileExists(t, w.Path())
}

func TestWriterVerboseEcho(t *testing.T) {
	var out strings.Builder

	w, err := New("", true)
	require.NoError(t, err)
	w.stdout = &out

	require.NoError(t, w.Emit("1000, 6.9503105590062105e-06"))
	assert.Regexp(t, entryPattern, strings.TrimRight(out.String(), "\n"))
}

func TestWriterNoOutput(t *testing.T) {
	w, err := New("", false)
	require.NoError(t, err)

	assert.Empty(t, w.Path())
	assert.NoError(t, w.Emit("1000, 6.9503105590062105e-06"))
	assert.NoError(t, w.Close())
}
