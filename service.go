// Package serial owns the lifecycle of at most one open serial connection
// and serializes all access to it. Every operation returns a uniform
// Outcome rather than an error, so a dispatcher can put results on the wire
// without translating them.
package serial

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// Messages that cross the remote interface verbatim. Fixed strings so
// callers can match on them.
const (
	msgAlreadyOpen   = "A port is already open"
	msgNoPortOpen    = "No port is currently open"
	msgOpenFailed    = "Could not open the port"
	msgRequestSent   = "Request sent"
	msgWriteTimedOut = "Serial write timed out"
	msgReadTimedOut  = "Serial read timed out"

	// NoPortsSentinel is the single descriptor Ports returns when
	// enumeration fails or finds nothing, so callers never see an empty
	// list.
	NoPortsSentinel = "No ports available"

	// defaultPortLabel stands in when the driver cannot report a name.
	defaultPortLabel = "default"
)

// Service owns the process-wide serial session: zero or one open device
// handle, with every operation serialized under a single mutex for its full
// duration, device I/O included. The short read timeout bounds how long one
// caller can hold the lock, so there is no separate fast path and no
// read/write lock split.
//
// Construct one Service at process start and share it by pointer with every
// request-handling context.
type Service struct {
	cfg Config
	log zerolog.Logger

	mu     sync.Mutex
	handle Port

	isOpen  atomic.Bool
	metrics Metrics
}

// NewService builds a closed session manager. A zero Config gets the
// default timeout and buffer size.
func NewService(cfg Config, logger zerolog.Logger) *Service {
	return &Service{
		cfg: cfg.withDefaults(),
		log: logger.With().Str("component", "serial").Logger(),
	}
}

// IsOpen reports whether a device is currently held, without taking the
// session lock.
func (s *Service) IsOpen() bool {
	return s.isOpen.Load()
}

// MetricsSnapshot returns a copy of the session counters.
func (s *Service) MetricsSnapshot() MetricsSnapshot {
	return s.metrics.Snapshot()
}

// Ports lists the addressable serial devices in enumeration order. It never
// returns an empty list: an enumeration failure and a machine with no ports
// both yield the single sentinel entry. Failure detail goes to the log, not
// to the caller.
func (s *Service) Ports() []string {
	ports, err := getPortsList()
	if err != nil {
		s.log.Warn().Err(err).Msg("port enumeration failed")
		return []string{NoPortsSentinel}
	}
	if len(ports) == 0 {
		return []string{NoPortsSentinel}
	}
	return ports
}

// Open acquires the device at name with the given baud rate and the
// configured read timeout. While a port is already open the call is
// rejected without touching the device. On any acquisition failure the
// caller gets the same generic message; the cause stays in the log so no
// local device detail leaks over the remote interface.
func (s *Service) Open(name string, baud int) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle != nil {
		s.metrics.StateRejections.Add(1)
		return fail(msgAlreadyOpen)
	}

	s.metrics.ConnectionAttempts.Add(1)

	if !validPortName(name) {
		s.metrics.ConnectionFailures.Add(1)
		s.log.Warn().Str("port", name).Msg("rejected port name")
		return fail(msgOpenFailed)
	}

	h, err := openPort(name, baud, s.cfg.OpenTimeout)
	if err != nil {
		s.metrics.ConnectionFailures.Add(1)
		s.log.Warn().Err(err).Str("port", name).Int("baud", baud).Msg("open failed")
		return fail(msgOpenFailed)
	}

	s.handle = h
	s.isOpen.Store(true)
	s.metrics.Opens.Add(1)
	s.metrics.LastOpenTime.Store(time.Now().Unix())

	label := h.Name()
	if label == "" {
		label = defaultPortLabel
	}

	s.log.Info().Str("port", label).Int("baud", h.BaudRate()).Msg("port opened")
	return ok(fmt.Sprintf("Opened port %s with a baudrate of %d", label, h.BaudRate()))
}

// Close releases the device handle and reports the closed port's name. The
// release runs even when the driver cannot report a name; a close error is
// logged but the session still transitions to closed.
func (s *Service) Close() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle == nil {
		s.metrics.StateRejections.Add(1)
		return fail(msgNoPortOpen)
	}

	label := s.handle.Name()
	if label == "" {
		label = defaultPortLabel
	}

	if err := s.closeLocked(); err != nil {
		s.log.Warn().Err(err).Str("port", label).Msg("close reported an error")
	}

	s.metrics.Closes.Add(1)
	s.metrics.LastCloseTime.Store(time.Now().Unix())

	s.log.Info().Str("port", label).Msg("port closed")
	return ok(fmt.Sprintf("Port %s closed", label))
}

// Send runs text through the escape codec and writes the resulting bytes to
// the device in a single operation. The write outcome is classified three
// ways: sent, timed out, or failed with the underlying error in the
// message. A failed send leaves the port open.
func (s *Service) Send(text string) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle == nil {
		s.metrics.StateRejections.Add(1)
		return fail(msgNoPortOpen)
	}

	payload := []byte(Encode(text))

	n, err := s.handle.Write(payload)
	switch {
	case err == nil:
		s.metrics.Sends.Add(1)
		s.metrics.BytesSent.Add(int64(n))
		s.log.Debug().Int("bytes", n).Msg("request sent")
		return ok(msgRequestSent)
	case isTimeout(err):
		s.metrics.SendTimeouts.Add(1)
		return fail(msgWriteTimedOut)
	default:
		s.metrics.SendErrors.Add(1)
		s.log.Warn().Err(err).Msg("serial write failed")
		return fail(fmt.Sprintf("Serial write error: %v", err))
	}
}

// Receive performs one bounded read and returns whatever arrived, lossily
// decoded as UTF-8 with invalid sequences replaced. There is no
// accumulation across reads; callers poll. Classification mirrors Send.
func (s *Service) Receive() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle == nil {
		s.metrics.StateRejections.Add(1)
		return fail(msgNoPortOpen)
	}

	buf := make([]byte, s.cfg.ReadBufferSize)

	n, err := s.handle.Read(buf)
	switch {
	case err == nil:
		content := strings.ToValidUTF8(string(buf[:n]), "�")
		s.metrics.Receives.Add(1)
		s.metrics.BytesReceived.Add(int64(n))
		s.log.Debug().Int("bytes", n).Str("content", content).Msg("received from serial")
		return ok(content)
	case isTimeout(err):
		s.metrics.ReceiveTimeouts.Add(1)
		return fail(msgReadTimedOut)
	default:
		s.metrics.ReceiveErrors.Add(1)
		s.log.Warn().Err(err).Msg("serial read failed")
		return fail(fmt.Sprintf("Serial read error: %v", err))
	}
}

// Shutdown releases the device handle if one is held. Safe to call with the
// session already closed; meant for process exit.
func (s *Service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle == nil {
		return
	}
	if err := s.closeLocked(); err != nil {
		s.log.Warn().Err(err).Msg("close during shutdown failed")
	}
}

// closeLocked drops the handle and clears the open state. Callers hold mu.
func (s *Service) closeLocked() error {
	h := s.handle
	s.handle = nil
	s.isOpen.Store(false)
	if h != nil {
		return h.Close()
	}
	return nil
}
