package ws

import "github.com/serialterm/serial"

// Op identifies a request kind. One op per session operation, plus ping.
type Op string

const (
	OpPing      Op = "ping"
	OpListPorts Op = "list_ports"
	OpOpenPort  Op = "open_port"
	OpClosePort Op = "close_port"
	OpSendOnce  Op = "send_once"
	OpReadOnce  Op = "read_once"
)

// Request is one inbound command. Fields beyond Op are read only by the ops
// that need them.
type Request struct {
	Op       Op     `json:"op"`
	ID       int64  `json:"id,omitempty"`
	Port     string `json:"port,omitempty"`
	Baudrate int    `json:"baudrate,omitempty"`
	Content  string `json:"content,omitempty"`
}

// Response mirrors the request's Op and ID so callers can pipeline requests
// over one connection.
type Response struct {
	Op      Op       `json:"op"`
	ID      int64    `json:"id,omitempty"`
	Success bool     `json:"success"`
	Content string   `json:"content,omitempty"`
	Ports   []string `json:"ports,omitempty"`
}

const pongContent = "Pong!"

func (r *Response) fromOutcome(out serial.Outcome) {
	r.Success = out.Success
	r.Content = out.Content
}
