// Package session wires an acquisition backend to the parser and the
// output sink, independent of the transport feeding it.
package session

import (
	"context"
	"fmt"

	"codeberg.org/mutker/currentctl/internal/adc"
	"codeberg.org/mutker/currentctl/internal/errors"
	"codeberg.org/mutker/currentctl/internal/logger"
)

type Session struct {
	model adc.Model
	sink  Sink
}

func New(model adc.Model, sink Sink) *Session {
	return &Session{
		model: model,
		sink:  sink,
	}
}

// Handle parses and emits one raw record. Structurally short records are
// skipped with a diagnostic; numeric parse failures propagate and end the
// session.
func (s *Session) Handle(raw string) error {
	formatted, err := adc.ParseLine(raw, s.model)
	if err != nil {
		if errors.HasCode(err, adc.ErrTooFewFields) {
			logger.Warn().Err(err).Msg("skipping malformed record")
			return nil
		}

		return err
	}

	return s.sink.Emit(formatted)
}

// Run drives one whole acquisition session from the given source.
func (s *Session) Run(ctx context.Context, src Source) error {
	return src.Stream(ctx, s.Handle)
}

// Calc converts a single ADC code through a synthetic record, bypassing
// the acquisition backends entirely.
func (s *Session) Calc(code float64) (string, error) {
	return adc.ParseLine(fmt.Sprintf("debug, %v", code), s.model)
}
