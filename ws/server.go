// Package ws dispatches remote serial commands onto the shared session
// manager over a JSON WebSocket protocol, with a few REST endpoints for
// enumeration and monitoring.
package ws

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/serialterm/serial"
)

// Server holds one shared session manager. The manager serializes device
// access internally, so any number of concurrent connections is safe.
type Server struct {
	session *serial.Service
	log     zerolog.Logger

	allowedOrigins map[string]bool
	upgrader       websocket.Upgrader
}

// NewServer builds a dispatcher around session. An empty allowedOrigins
// list permits every origin, which suits a LAN tool; otherwise the Origin
// header must match one of the entries exactly.
func NewServer(session *serial.Service, logger zerolog.Logger, allowedOrigins []string) *Server {
	s := &Server{
		session:        session,
		log:            logger.With().Str("component", "ws").Logger(),
		allowedOrigins: make(map[string]bool),
	}

	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		s.allowedOrigins[trimmed] = true
	}

	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	return s
}

func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/api/ports", s.handlePorts)
	mux.HandleFunc("/api/metrics", s.handleMetrics)
	mux.HandleFunc("/healthz", s.handleHealthz)
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.allowedOrigins) == 0 {
		return true
	}
	return s.allowedOrigins[r.Header.Get("Origin")]
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("ws upgrade failed")
		return
	}

	s.log.Info().Str("remote", r.RemoteAddr).Msg("client connected")
	defer func() {
		_ = conn.Close()
		s.log.Info().Str("remote", r.RemoteAddr).Msg("client disconnected")
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			s.write(conn, Response{Success: false, Content: "malformed request: " + err.Error()})
			continue
		}

		s.write(conn, s.dispatch(req))
	}
}

// dispatch maps one request onto the session manager. Every op answers;
// unknown ops answer with a failure rather than dropping the connection.
func (s *Server) dispatch(req Request) Response {
	resp := Response{Op: req.Op, ID: req.ID}
	s.log.Debug().Str("op", string(req.Op)).Msg("request")

	switch req.Op {
	case OpPing:
		resp.Success = true
		resp.Content = pongContent
	case OpListPorts:
		resp.Success = true
		resp.Ports = s.session.Ports()
	case OpOpenPort:
		if !serial.BaudRate(req.Baudrate).Conventional() {
			s.log.Warn().Int("baud", req.Baudrate).Msg("unconventional baud rate requested")
		}
		resp.fromOutcome(s.session.Open(req.Port, req.Baudrate))
	case OpClosePort:
		resp.fromOutcome(s.session.Close())
	case OpSendOnce:
		resp.fromOutcome(s.session.Send(req.Content))
	case OpReadOnce:
		resp.fromOutcome(s.session.Receive())
	default:
		resp.Success = false
		resp.Content = fmt.Sprintf("unknown op %q", req.Op)
	}
	return resp
}

func (s *Server) write(conn *websocket.Conn, resp Response) {
	if err := conn.WriteJSON(resp); err != nil {
		s.log.Warn().Err(err).Msg("ws write failed")
	}
}

func (s *Server) handlePorts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.session.Ports())
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.session.MetricsSnapshot())
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"port_open": s.session.IsOpen(),
	})
}
