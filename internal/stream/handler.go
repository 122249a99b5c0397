// internal/stream/handler.go
package stream

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"tapline/internal/store"
)

const writeTimeout = 10 * time.Second

// Handler upgrades HTTP connections to websocket subscribers.
type Handler struct {
	hub      *Hub
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			// Observers are integration-test clients; origin checks
			// belong to the venue's real gateway.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection, registers it with the hub, and
// pumps broadcast messages until either side closes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sub := NewSubscriber(store.NewID())
	h.hub.Register(sub)

	go h.writePump(sub, conn)
	go h.readPump(sub, conn)
}

// writePump drains the subscriber queue onto the wire. A write failure
// unregisters the subscriber; churn is expected and not an error.
func (h *Handler) writePump(sub *Subscriber, conn *websocket.Conn) {
	defer conn.Close()
	for msg := range sub.Messages() {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.hub.Unregister(sub)
			return
		}
	}
	// Queue closed by the hub; tell the peer we are done.
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readPump discards inbound frames and unregisters on close/error.
func (h *Handler) readPump(sub *Subscriber, conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.hub.Unregister(sub)
			return
		}
	}
}
