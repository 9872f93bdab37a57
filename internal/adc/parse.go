package adc

import (
	"fmt"
	"strconv"
	"strings"

	"codeberg.org/mutker/currentctl/internal/errors"
	"codeberg.org/mutker/currentctl/internal/logger"
)

// ParseLine converts one raw record into its formatted measurement string.
//
// A record is a comma-separated line: a tag field followed by one ADC code
// per channel. The result is "<adc_code>, <current>" with one further
// ", <current>" per enabled extra channel, in field order.
//
// A record with fewer than two fields fails with ErrTooFewFields; callers
// treat that as a skipped record. A field that does not parse as a number
// fails with ErrBadCode, which aborts the acquisition session.
//
// In four-channel mode a record that is missing channels 2-4 yields the
// channel 1 result alone, with a diagnostic. The record count invariant
// holds otherwise: one converted value per channel, or no output at all.
func ParseLine(raw string, m Model) (string, error) {
	errFactory := errors.New()

	fields := strings.Split(raw, ",")
	if len(fields) < 2 {
		return "", errFactory.WithData(ErrTooFewFields, strings.TrimSpace(raw))
	}

	code, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return "", errFactory.Wrap(ErrBadCode, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%v, %v", code, ShuntCurrent(code, m))

	if m.FourChannel {
		if len(fields) < 5 {
			logger.Warn().
				Str("record", strings.TrimSpace(raw)).
				Msg("channels 2-4 missing, emitting channel 1 only")

			return b.String(), nil
		}

		for _, field := range fields[2:5] {
			code, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return "", errFactory.Wrap(ErrBadCode, err)
			}
			fmt.Fprintf(&b, ", %v", ShuntCurrent(code, m))
		}
	}

	return b.String(), nil
}
