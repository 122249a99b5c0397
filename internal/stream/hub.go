// internal/stream/hub.go
package stream

import (
	"encoding/json"
	"log/slog"
	"sync"

	"tapline/internal/events"
)

// VersionFunc reports the current menu version for connection acks.
type VersionFunc func() uint64

// Hub maintains the set of live subscribers and fans domain events out
// to all of them. The subscriber set churns concurrently with
// broadcast iteration; removal of an absent subscriber is a no-op.
type Hub struct {
	version VersionFunc
	logger  *slog.Logger

	mu   sync.Mutex
	subs map[*Subscriber]struct{}
}

// NewHub creates a hub. version supplies the menu version sent in the
// connection acknowledgement.
func NewHub(version VersionFunc, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		version: version,
		logger:  logger,
		subs:    make(map[*Subscriber]struct{}),
	}
}

// Register adds a subscriber and immediately sends it a connection
// acknowledgement carrying the current menu version, so a newly joined
// subscriber is never blind to the current generation.
func (h *Hub) Register(s *Subscriber) {
	ack, err := json.Marshal(events.NewEnvelope(events.ConnectionAck{MenuVersion: h.version()}))
	if err != nil {
		h.logger.Error("marshal connection ack", "error", err)
		return
	}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	count := len(h.subs)
	h.mu.Unlock()

	s.trySend(ack)
	h.logger.Info("subscriber registered", "subscriber_id", s.ID(), "subscribers", count)
}

// Unregister removes a subscriber and closes its queue. Idempotent;
// unregistering an unknown subscriber has no effect.
func (h *Hub) Unregister(s *Subscriber) {
	h.mu.Lock()
	_, present := h.subs[s]
	delete(h.subs, s)
	count := len(h.subs)
	h.mu.Unlock()

	s.Close()
	if present {
		h.logger.Info("subscriber unregistered", "subscriber_id", s.ID(), "subscribers", count)
	}
}

// Broadcast serializes the event once and attempts to send it to every
// registered subscriber. Subscribers that cannot accept the message
// are pruned silently; connections naturally churn.
func (h *Hub) Broadcast(p events.Payload) {
	msg, err := json.Marshal(events.NewEnvelope(p))
	if err != nil {
		h.logger.Error("marshal event", "event", p.EventType(), "error", err)
		return
	}

	h.mu.Lock()
	targets := make([]*Subscriber, 0, len(h.subs))
	for s := range h.subs {
		targets = append(targets, s)
	}
	h.mu.Unlock()

	var dead []*Subscriber
	for _, s := range targets {
		if !s.trySend(msg) {
			dead = append(dead, s)
		}
	}
	for _, s := range dead {
		h.Unregister(s)
	}
}

// Count returns the number of live subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
