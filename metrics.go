package serial

import "go.uber.org/atomic"

// Metrics tracks session health counters. All fields are atomic so readers
// never take the session lock just to observe a number.
type Metrics struct {
	// Connection statistics
	ConnectionAttempts atomic.Int64 // Total open attempts that reached the driver path
	ConnectionFailures atomic.Int64 // Open attempts the driver or hygiene check refused
	Opens              atomic.Int64 // Successful opens
	Closes             atomic.Int64 // Successful closes
	LastOpenTime       atomic.Int64 // Unix timestamp of last successful open
	LastCloseTime      atomic.Int64 // Unix timestamp of last successful close

	// Send operations
	Sends        atomic.Int64 // Successful sends
	SendTimeouts atomic.Int64 // Write timeout failures
	SendErrors   atomic.Int64 // Other write errors
	BytesSent    atomic.Int64 // Total bytes written to the device

	// Receive operations
	Receives        atomic.Int64 // Successful receives
	ReceiveTimeouts atomic.Int64 // Read timeout failures
	ReceiveErrors   atomic.Int64 // Other read errors
	BytesReceived   atomic.Int64 // Total bytes read from the device

	// StateRejections counts operations refused because the session was in
	// the wrong state: open while open, or close/send/receive while closed.
	StateRejections atomic.Int64
}

// MetricsSnapshot is a point-in-time copy of Metrics, shaped for JSON
// export.
type MetricsSnapshot struct {
	ConnectionAttempts int64 `json:"connection_attempts"`
	ConnectionFailures int64 `json:"connection_failures"`
	Opens              int64 `json:"opens"`
	Closes             int64 `json:"closes"`
	LastOpenTime       int64 `json:"last_open_time"`
	LastCloseTime      int64 `json:"last_close_time"`

	Sends        int64 `json:"sends"`
	SendTimeouts int64 `json:"send_timeouts"`
	SendErrors   int64 `json:"send_errors"`
	BytesSent    int64 `json:"bytes_sent"`

	Receives        int64 `json:"receives"`
	ReceiveTimeouts int64 `json:"receive_timeouts"`
	ReceiveErrors   int64 `json:"receive_errors"`
	BytesReceived   int64 `json:"bytes_received"`

	StateRejections int64 `json:"state_rejections"`
}

// Snapshot copies the counters. The copy is not atomic across fields;
// counters may move between loads, which is fine for monitoring.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		ConnectionAttempts: m.ConnectionAttempts.Load(),
		ConnectionFailures: m.ConnectionFailures.Load(),
		Opens:              m.Opens.Load(),
		Closes:             m.Closes.Load(),
		LastOpenTime:       m.LastOpenTime.Load(),
		LastCloseTime:      m.LastCloseTime.Load(),

		Sends:        m.Sends.Load(),
		SendTimeouts: m.SendTimeouts.Load(),
		SendErrors:   m.SendErrors.Load(),
		BytesSent:    m.BytesSent.Load(),

		Receives:        m.Receives.Load(),
		ReceiveTimeouts: m.ReceiveTimeouts.Load(),
		ReceiveErrors:   m.ReceiveErrors.Load(),
		BytesReceived:   m.BytesReceived.Load(),

		StateRejections: m.StateRejections.Load(),
	}
}
