package adc

import "codeberg.org/mutker/currentctl/internal/errors"

const (
	// Record errors
	ErrTooFewFields = errors.ErrorCode("adc_record_too_few_fields")
	ErrBadCode      = errors.ErrorCode("adc_code_parse_failed")
)
