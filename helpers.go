package serial

import "strings"

// validPortName rejects names that could never address a serial device
// before anything touches the filesystem. The check is deliberately loose,
// the driver has the final say; it exists to stop path traversal through
// the remote interface.
func validPortName(name string) bool {
	if name == "" {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	return true
}
