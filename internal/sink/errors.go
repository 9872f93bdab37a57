package sink

import "codeberg.org/mutker/currentctl/internal/errors"

const (
	ErrCreateOutputDir = errors.ErrorCode("sink_create_output_dir_failed")
	ErrCreateLogFile   = errors.ErrorCode("sink_create_log_file_failed")
	ErrWriteLog        = errors.ErrorCode("sink_write_log_failed")
	ErrCloseLog        = errors.ErrorCode("sink_close_log_failed")
)
