package serial

import (
	"os"
	"time"

	gobug "go.bug.st/serial"
)

// Port abstracts the open device handle: the subset of go.bug.st/serial.Port
// the session manager uses, plus the identity facts recorded when the port
// was opened.
type Port interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error

	// Name returns the device path the port was opened with, or "" when
	// unknown.
	Name() string

	// BaudRate returns the negotiated baud rate, or 0 when unknown.
	BaudRate() int
}

// allow tests to override external dependencies
var (
	openPort     = openBugstPort
	getPortsList = gobug.GetPortsList
)

func openBugstPort(name string, baud int, readTimeout time.Duration) (Port, error) {
	mode := &gobug.Mode{BaudRate: baud}

	p, err := gobug.Open(name, mode)
	if err != nil {
		return nil, err
	}
	if err = p.SetReadTimeout(readTimeout); err != nil {
		_ = p.Close()
		return nil, err
	}

	return &bugstPort{Port: p, name: name, baud: baud}, nil
}

// bugstPort wraps the concrete serial.Port to satisfy Port.
type bugstPort struct {
	gobug.Port
	name string
	baud int
}

func (p *bugstPort) Name() string  { return p.name }
func (p *bugstPort) BaudRate() int { return p.baud }

// Read maps an expired read timeout, which go.bug.st reports as a zero-byte
// read with a nil error, onto os.ErrDeadlineExceeded.
func (p *bugstPort) Read(b []byte) (int, error) {
	n, err := p.Port.Read(b)
	if n == 0 && err == nil {
		return 0, os.ErrDeadlineExceeded
	}
	return n, err
}
