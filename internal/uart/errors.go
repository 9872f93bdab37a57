package uart

import "codeberg.org/mutker/currentctl/internal/errors"

const (
	ErrListPorts   = errors.ErrorCode("uart_list_ports_failed")
	ErrOpenPort    = errors.ErrorCode("uart_open_port_failed")
	ErrReadPort    = errors.ErrorCode("uart_read_failed")
	ErrReadTimeout = errors.ErrorCode("uart_read_timeout")
)
