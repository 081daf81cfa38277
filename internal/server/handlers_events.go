package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/hr-insights/internal/realtime"
)

// keepAliveInterval spaces comment lines on idle event streams.
const keepAliveInterval = 25 * time.Second

// handleWebSocket upgrades to a websocket carrying the caller's events
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	s.ws.Serve(w, r, user.UserID)
}

// handleEvents streams the caller's events as server-sent events until the
// client disconnects
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	sub := s.hub.Subscribe(realtime.UserRoom(user.UserID))
	defer sub.Close()

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := sse.WriteEvent("connected", map[string]string{"room": sub.Room()}); err != nil {
		return
	}

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			if err := sse.WriteEvent(event.Type, event); err != nil {
				s.logger.Debug("event stream closed", zap.String("user_id", user.UserID), zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := sse.WriteComment("keep-alive"); err != nil {
				return
			}
		}
	}
}
