package serial

import (
	"errors"
	"os"
)

var (
	// ErrPortNotOpen reports an operation attempted while no device is held.
	ErrPortNotOpen = errors.New("serial: no port is currently open")

	// ErrPortAlreadyOpen reports an open attempt while a device is held.
	ErrPortAlreadyOpen = errors.New("serial: a port is already open")
)

// timeoutError is the shape both net and fs deadline errors expose.
type timeoutError interface {
	Timeout() bool
}

// isTimeout distinguishes an expired I/O deadline from other device errors.
// Timeouts are expected under the short fixed timeout policy and get their
// own outcome message.
func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var te timeoutError
	return errors.As(err, &te) && te.Timeout()
}
