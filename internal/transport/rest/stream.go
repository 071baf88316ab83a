package rest

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/heartmarshall/council-backend/internal/event"
	"github.com/heartmarshall/council-backend/pkg/ctxutil"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = streamPongWait * 9 / 10
)

type eventSource interface {
	Subscribe(viewerID uuid.UUID) (<-chan event.Event, func())
}

// StreamHandler pushes the caller's broadcast events over a websocket.
type StreamHandler struct {
	events   eventSource
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// NewStreamHandler creates a StreamHandler. allowedOrigins is the CORS origin
// list; "*" accepts any origin.
func NewStreamHandler(events eventSource, allowedOrigins string, logger *slog.Logger) *StreamHandler {
	origins := strings.Split(allowedOrigins, ",")
	return &StreamHandler{
		events: events,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, o := range origins {
					o = strings.TrimSpace(o)
					if o == "*" || o == origin {
						return true
					}
				}
				return false
			},
		},
		log: logger.With("handler", "stream"),
	}
}

// ServeHTTP upgrades the connection and forwards events until either side
// goes away.
// GET /api/feed/stream
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.log.DebugContext(r.Context(), "websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	events, unsubscribe := h.events.Subscribe(userID)
	defer unsubscribe()

	h.log.InfoContext(r.Context(), "stream opened", slog.String("user_id", userID.String()))

	closed := make(chan struct{})
	go h.readLoop(conn, closed)

	ping := time.NewTicker(streamPingPeriod)
	defer ping.Stop()

	for {
		select {
		case e, ok := <-events:
			conn.SetWriteDeadline(time.Now().Add(streamWriteWait)) //nolint:errcheck
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")) //nolint:errcheck
				return
			}
			if err := conn.WriteJSON(e); err != nil {
				h.log.DebugContext(r.Context(), "stream write failed", slog.String("error", err.Error()))
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(streamWriteWait)) //nolint:errcheck
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			h.log.InfoContext(r.Context(), "stream closed", slog.String("user_id", userID.String()))
			return
		case <-r.Context().Done():
			return
		}
	}
}

// readLoop drains client frames so pongs and close frames are processed.
// The stream is push-only; client messages are ignored.
func (h *StreamHandler) readLoop(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(streamPongWait)) //nolint:errcheck
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
