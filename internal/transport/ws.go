package transport

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// Cross-origin checks for the feed are handled by the CORS layer; the
// upgrade itself accepts any origin.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if s.events == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "live updates not enabled"})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error to the client
		if s.logger != nil {
			s.logger.Debug("websocket upgrade failed", "error", err)
		}
		return
	}

	s.events.ServeConn(conn)
}
