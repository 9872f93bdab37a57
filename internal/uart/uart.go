// Package uart reads line-delimited sensor records from a serial port.
package uart

import (
	"bytes"
	"context"
	"time"

	"codeberg.org/mutker/currentctl/internal/errors"
	"codeberg.org/mutker/currentctl/internal/logger"
	"codeberg.org/mutker/currentctl/internal/session"
	"go.bug.st/serial"
)

const (
	// DefaultBaudRate matches the M5Atom firmware.
	DefaultBaudRate = 115200

	readTimeout   = 30 * time.Millisecond
	readChunkSize = 256
)

// Source streams records from a serial interface. The loop is fully
// synchronous: one blocking read per iteration, every completed line handed
// to the handler before the next read. A read window that expires with no
// data aborts the session; the sensor is expected to produce records
// continuously.
type Source struct {
	port string
	baud int
}

var _ session.Source = (*Source)(nil)

func New(port string, baud int) *Source {
	if baud == 0 {
		baud = DefaultBaudRate
	}

	return &Source{
		port: port,
		baud: baud,
	}
}

// ListPorts returns the serial ports detected on this host.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, errors.New().Wrap(ErrListPorts, err)
	}

	return ports, nil
}

func (s *Source) Stream(ctx context.Context, handle session.Handler) error {
	errFactory := errors.New()

	port, err := serial.Open(s.port, &serial.Mode{BaudRate: s.baud})
	if err != nil {
		return errFactory.Wrap(ErrOpenPort, err).WithData(s.port)
	}
	defer port.Close()

	if err := port.SetReadTimeout(readTimeout); err != nil {
		return errFactory.Wrap(ErrOpenPort, err)
	}

	logger.Info().
		Str("interface", s.port).
		Int("baud_rate", s.baud).
		Msg("serial port opened")

	var records lineBuffer
	chunk := make([]byte, readChunkSize)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := port.Read(chunk)
		if err != nil {
			return errFactory.Wrap(ErrReadPort, err)
		}
		if n == 0 {
			// Read window expired with nothing on the wire.
			return errFactory.WithData(ErrReadTimeout, s.port)
		}

		for _, record := range records.feed(chunk[:n]) {
			if err := handle(record); err != nil {
				return err
			}
		}
	}
}

// lineBuffer assembles newline-delimited records from arbitrary read
// chunks. Partial lines are held until their terminator arrives.
type lineBuffer struct {
	pending []byte
}

func (b *lineBuffer) feed(chunk []byte) []string {
	b.pending = append(b.pending, chunk...)

	var records []string
	for {
		i := bytes.IndexByte(b.pending, '\n')
		if i < 0 {
			return records
		}
		records = append(records, string(b.pending[:i]))
		b.pending = b.pending[i+1:]
	}
}
