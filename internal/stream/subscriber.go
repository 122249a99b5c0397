// internal/stream/subscriber.go
package stream

import "sync"

// subscriberBuffer is the outbound queue depth per subscriber. A
// subscriber that falls this far behind is treated as dead and pruned.
const subscriberBuffer = 32

// Subscriber is one live observer of the event stream. The hub pushes
// serialized envelopes into its queue; a transport (websocket handler,
// test harness) drains Messages.
type Subscriber struct {
	id string

	mu     sync.Mutex
	ch     chan []byte
	closed bool
}

// NewSubscriber returns a subscriber with a buffered outbound queue.
func NewSubscriber(id string) *Subscriber {
	return &Subscriber{
		id: id,
		ch: make(chan []byte, subscriberBuffer),
	}
}

// ID returns the subscriber's connection id.
func (s *Subscriber) ID() string { return s.id }

// Messages is the outbound queue drained by the transport. It is
// closed when the subscriber is closed.
func (s *Subscriber) Messages() <-chan []byte {
	return s.ch
}

// Close shuts the outbound queue. Idempotent.
func (s *Subscriber) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}

// trySend enqueues msg without blocking. It reports false when the
// subscriber is closed or its queue is full, which the hub treats as a
// dead connection.
func (s *Subscriber) trySend(msg []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- msg:
		return true
	default:
		return false
	}
}
