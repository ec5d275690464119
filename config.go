package serial

import (
	"fmt"
	"time"
)

const (
	// DefaultOpenTimeout is the device read timeout applied when a port is
	// opened. It is tuned for interactive polling, not bulk transfer: a
	// caller blocked behind a quiet device waits tens of milliseconds at
	// most.
	DefaultOpenTimeout = 10 * time.Millisecond

	// DefaultReadBufferSize is how many bytes a single Receive may return.
	DefaultReadBufferSize = 32

	// MaxReadBufferSize caps the receive buffer to keep a misconfigured
	// deployment from allocating per-request buffers without bound.
	MaxReadBufferSize = 64 * 1024
)

// Config holds the session manager's tunables.
type Config struct {
	// OpenTimeout bounds every device read on the opened port.
	OpenTimeout time.Duration

	// ReadBufferSize is the fixed size of a single receive.
	ReadBufferSize int
}

// DefaultConfig returns the configuration the original deployment runs with.
func DefaultConfig() Config {
	return Config{
		OpenTimeout:    DefaultOpenTimeout,
		ReadBufferSize: DefaultReadBufferSize,
	}
}

// withDefaults fills unset fields so a zero Config behaves like
// DefaultConfig.
func (c Config) withDefaults() Config {
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = DefaultOpenTimeout
	}
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = DefaultReadBufferSize
	}
	return c
}

// ValidateConfig checks the configuration for obvious issues.
func ValidateConfig(cfg Config) error {
	if cfg.OpenTimeout < 0 {
		return fmt.Errorf("open timeout cannot be negative: %v", cfg.OpenTimeout)
	}
	if cfg.ReadBufferSize < 0 {
		return fmt.Errorf("read buffer size cannot be negative: %d", cfg.ReadBufferSize)
	}
	if cfg.ReadBufferSize > MaxReadBufferSize {
		return fmt.Errorf("read buffer size too large (max %d): %d", MaxReadBufferSize, cfg.ReadBufferSize)
	}
	return nil
}
