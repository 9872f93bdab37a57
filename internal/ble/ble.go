// Package ble receives sensor records as BLE notifications from the
// M5Atom sender firmware.
package ble

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"codeberg.org/mutker/currentctl/internal/errors"
	"codeberg.org/mutker/currentctl/internal/logger"
	"codeberg.org/mutker/currentctl/internal/session"
	"github.com/google/uuid"
	"tinygo.org/x/bluetooth"
)

// Firmware contract: both values must match the sender exactly.
const (
	// PeripheralNameFilter selects sender devices by advertised name
	// substring.
	PeripheralNameFilter = "M5Atom-MCP3424 BLE Sender"

	scanWindow = 2 * time.Second
)

// notifyCharacteristicUUID identifies the current-reading notify
// characteristic on the sender.
var notifyCharacteristicUUID = bluetooth.NewUUID(
	uuid.MustParse("ae84d642-7f4b-11ec-a8a3-0242ac120002"),
)

// Source streams records from one matching peripheral. An acquisition
// session is one-shot: scan for a fixed window, connect to the first
// matching peripheral that accepts, subscribe, and consume notifications
// until the remote side disconnects. There is no reconnect.
type Source struct {
	adapter *bluetooth.Adapter
}

var _ session.Source = (*Source)(nil)

func New() *Source {
	return &Source{
		adapter: bluetooth.DefaultAdapter,
	}
}

// matchesFilter reports whether an advertised name belongs to a sender
// device.
func matchesFilter(name string) bool {
	return strings.Contains(name, PeripheralNameFilter)
}

func (s *Source) Stream(ctx context.Context, handle session.Handler) error {
	errFactory := errors.New()

	if err := s.adapter.Enable(); err != nil {
		// No usable adapter ends the session without retry.
		logger.Error().Err(err).Msg("no usable BLE adapter")
		return nil
	}

	candidates, err := s.scan()
	if err != nil {
		return errFactory.Wrap(ErrScan, err)
	}
	if len(candidates) == 0 {
		logger.Warn().
			Str("filter", PeripheralNameFilter).
			Msg("no matching BLE peripherals found")

		return nil
	}

	disconnected := make(chan struct{})
	var once sync.Once
	s.adapter.SetConnectHandler(func(_ bluetooth.Device, connected bool) {
		if !connected {
			once.Do(func() { close(disconnected) })
		}
	})

	for _, candidate := range candidates {
		name := candidate.LocalName()

		device, err := s.adapter.Connect(candidate.Address, bluetooth.ConnectionParams{})
		if err != nil {
			logger.Error().Err(err).
				Str("peripheral", name).
				Msg("connect failed, skipping peripheral")

			continue
		}
		logger.Info().
			Str("peripheral", name).
			Str("address", candidate.Address.String()).
			Msg("connected to peripheral")

		// One handled peripheral ends the whole session.
		return s.stream(ctx, device, handle, disconnected)
	}

	return nil
}

// scan collects matching peripherals discovered within the scan window.
func (s *Source) scan() ([]bluetooth.ScanResult, error) {
	var (
		mu      sync.Mutex
		seen    = make(map[string]bool)
		matches []bluetooth.ScanResult
	)

	timer := time.AfterFunc(scanWindow, func() {
		if err := s.adapter.StopScan(); err != nil {
			logger.Error().Err(err).Msg("failed to stop scan")
		}
	})
	defer timer.Stop()

	logger.Info().Dur("window", scanWindow).Msg("scanning for peripherals")

	err := s.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
		mu.Lock()
		defer mu.Unlock()

		addr := result.Address.String()
		if seen[addr] {
			return
		}
		seen[addr] = true

		name := result.LocalName()
		logger.Info().
			Str("peripheral", name).
			Str("address", addr).
			Msg("discovered peripheral")

		if matchesFilter(name) {
			matches = append(matches, result)
		} else {
			logger.Debug().Str("peripheral", name).Msg("skipping peripheral")
		}
	})
	if err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()

	return matches, nil
}

// stream subscribes to the notify characteristic and feeds each payload to
// the handler until the peripheral disconnects or the handler fails.
func (s *Source) stream(
	ctx context.Context,
	device bluetooth.Device,
	handle session.Handler,
	disconnected <-chan struct{},
) error {
	errFactory := errors.New()

	defer func() {
		if err := device.Disconnect(); err != nil {
			logger.Error().Err(err).Msg("disconnect failed")
		}
	}()

	services, err := device.DiscoverServices(nil)
	if err != nil {
		return errFactory.Wrap(ErrDiscoverServices, err)
	}

	var (
		char  bluetooth.DeviceCharacteristic
		found bool
	)
	for _, svc := range services {
		chars, err := svc.DiscoverCharacteristics([]bluetooth.UUID{notifyCharacteristicUUID})
		if err != nil || len(chars) == 0 {
			continue
		}
		char = chars[0]
		found = true

		break
	}
	if !found {
		// Expected characteristic missing means the firmware does not
		// match this tool.
		return errFactory.WithData(ErrNotifyCharacteristic, notifyCharacteristicUUID.String())
	}

	done := make(chan struct{})
	defer close(done)

	// Unbuffered: notifications are handled strictly one at a time, in
	// arrival order.
	payloads := make(chan []byte)
	err = char.EnableNotifications(func(buf []byte) {
		data := make([]byte, len(buf))
		copy(data, buf)
		select {
		case payloads <- data:
		case <-done:
		}
	})
	if err != nil {
		return errFactory.Wrap(ErrSubscribe, err)
	}

	logger.Info().
		Str("characteristic", notifyCharacteristicUUID.String()).
		Msg("subscribed to notifications")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-disconnected:
			logger.Info().Msg("peripheral disconnected")
			return nil
		case payload := <-payloads:
			if !utf8.Valid(payload) {
				return errFactory.WithData(ErrInvalidPayload, payload)
			}
			if err := handle(string(payload)); err != nil {
				return err
			}
		}
	}
}
