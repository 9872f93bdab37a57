// Package sink delivers formatted measurements to the console and to an
// optional append-only session log file.
package sink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/mutker/currentctl/internal/errors"
	"codeberg.org/mutker/currentctl/internal/logger"
)

const (
	defaultDirPerm  = 0o755
	entryTimeFormat = time.RFC3339Nano
	fileStampFormat = "20060102_150405_MST"
)

// Writer emits one timestamped entry per measurement. With verbose set it
// echoes entries to stdout; with an output directory set it appends them to
// a per-session log file, syncing after every entry. The record rate is
// sensor-bound, so durability wins over throughput. Without either it is a
// no-op consumer.
//
// A Writer is owned by exactly one acquisition session and is not safe for
// concurrent use.
type Writer struct {
	verbose bool
	file    *os.File
	path    string
	stdout  io.Writer
}

// New creates a Writer. A non-empty outputDir is created if needed and a
// session log file named current_<YYYYMMDD_HHMMSS_TZ>.txt is opened in it.
func New(outputDir string, verbose bool) (*Writer, error) {
	errFactory := errors.New()

	w := &Writer{
		verbose: verbose,
		stdout:  os.Stdout,
	}
	if outputDir == "" {
		return w, nil
	}

	if err := os.MkdirAll(outputDir, defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrCreateOutputDir, err)
	}

	name := fmt.Sprintf("current_%s.txt", time.Now().Format(fileStampFormat))
	w.path = filepath.Join(outputDir, name)

	file, err := os.Create(w.path)
	if err != nil {
		return nil, errFactory.Wrap(ErrCreateLogFile, err)
	}
	w.file = file

	logger.Info().Str("log_file", w.path).Msg("session log created")

	return w, nil
}

// Emit writes one timestamped entry.
func (w *Writer) Emit(formatted string) error {
	errFactory := errors.New()

	timestamp := time.Now().Format(entryTimeFormat)

	if w.verbose {
		fmt.Fprintf(w.stdout, "%s, %s\n", timestamp, formatted)
	}

	if w.file == nil {
		return nil
	}

	if _, err := fmt.Fprintf(w.file, "%s, %s\n", timestamp, formatted); err != nil {
		return errFactory.Wrap(ErrWriteLog, err)
	}
	if err := w.file.Sync(); err != nil {
		return errFactory.Wrap(ErrWriteLog, err)
	}

	return nil
}

// Path returns the session log file path, or "" when file logging is off.
func (w *Writer) Path() string {
	return w.path
}

// Close closes the session log file if one is open.
func (w *Writer) Close() error {
	errFactory := errors.New()

	if w.file == nil {
		return nil
	}
	if err := w.file.Close(); err != nil {
		return errFactory.Wrap(ErrCloseLog, err)
	}
	w.file = nil

	return nil
}
