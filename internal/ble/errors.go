package ble

import "codeberg.org/mutker/currentctl/internal/errors"

const (
	ErrScan                 = errors.ErrorCode("ble_scan_failed")
	ErrDiscoverServices     = errors.ErrorCode("ble_discover_services_failed")
	ErrNotifyCharacteristic = errors.ErrorCode("ble_notify_characteristic_missing")
	ErrSubscribe            = errors.ErrorCode("ble_subscribe_failed")
	ErrInvalidPayload       = errors.ErrorCode("ble_invalid_payload")
)
