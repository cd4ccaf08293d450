package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// MessageType names the kind of a WebSocket message.
type MessageType string

const (
	MsgTypeDashboardUpdate MessageType = "DashboardUpdate"
	MsgTypeSystemError     MessageType = "SystemError"
)

// WSMessage is the envelope pushed over the dashboard feed.
type WSMessage struct {
	Type MessageType `json:"type"`
	Data any         `json:"data,omitempty"`
	// Timestamp is RFC 3339, UTC.
	Timestamp string `json:"timestamp"`
}

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// The feed is push only; clients send nothing but control frames.
	maxMessageSize = 512
)

func (s *Server) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowOrigin(s.cfg.AllowOrigins, origin) != ""
		},
	}
}

// handleDashboardStream upgrades the connection and pushes a dashboard
// snapshot on connect and on every refresh tick until the client goes away or
// the server closes.
func (s *Server) handleDashboardStream(w http.ResponseWriter, r *http.Request) {
	if !s.trackStream() {
		s.respondWithError(w, http.StatusServiceUnavailable, "Server is shutting down.")
		return
	}
	defer s.streams.Done()

	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		s.logger.Warn("Failed to upgrade connection to WebSocket", zap.Error(err))
		return
	}
	s.logger.Info("Dashboard feed connected.", zap.String("remote_addr", r.RemoteAddr))

	gone := make(chan struct{})
	go s.readPump(conn, gone)
	s.writePump(r.Context(), conn, gone)

	s.logger.Info("Dashboard feed disconnected.", zap.String("remote_addr", r.RemoteAddr))
}

// readPump drains control frames so pongs and close frames are processed, and
// closes gone when the connection fails.
func (s *Server) readPump(conn *websocket.Conn, gone chan<- struct{}) {
	defer close(gone)

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("Dashboard feed closed unexpectedly", zap.Error(err))
			}
			return
		}
	}
}

// writePump owns every write to conn.
func (s *Server) writePump(ctx context.Context, conn *websocket.Conn, gone <-chan struct{}) {
	refresh := time.NewTicker(s.cfg.DashboardRefresh)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		refresh.Stop()
		ping.Stop()
		conn.Close()
		<-gone
	}()

	if !s.pushDashboard(ctx, conn) {
		return
	}
	for {
		select {
		case <-refresh.C:
			if !s.pushDashboard(ctx, conn) {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-gone:
			return
		case <-s.closing:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		}
	}
}

// pushDashboard sends one snapshot, or a SystemError when the source fails.
// It reports whether the connection is still usable.
func (s *Server) pushDashboard(ctx context.Context, conn *websocket.Conn) bool {
	now := s.clock()
	msg := WSMessage{Type: MsgTypeDashboardUpdate, Timestamp: now.UTC().Format(time.RFC3339)}

	d, err := s.dashboard(ctx, now)
	if err != nil {
		s.logger.Error("Failed to build dashboard snapshot.", zap.Error(err))
		msg.Type = MsgTypeSystemError
		msg.Data = map[string]string{"error": "Failed to build dashboard."}
	} else {
		msg.Data = d
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("Failed to encode dashboard snapshot.", zap.Error(err))
		return false
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return false
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		s.logger.Debug("Failed to push dashboard snapshot.", zap.Error(err))
		return false
	}
	return true
}
