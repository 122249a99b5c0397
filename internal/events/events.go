// Package events defines the domain events broadcast to stream
// subscribers and the envelope they travel in.
package events

import "time"

// Event type tags carried in the envelope's event field.
const (
	TypeOrderCreated     = "order.created"
	TypePriceUpdated     = "price.updated"
	TypeMenuPublished    = "menu.published"
	TypePromotionCreated = "promotion.created"

	// TypeConnectionAck is sent to a subscriber immediately after it
	// registers, carrying the current menu version.
	TypeConnectionAck = "connection.ack"
)

// Payload is implemented by every concrete event payload. The tag
// returned by EventType selects the envelope's event field.
type Payload interface {
	EventType() string
}

// Envelope is the wire shape delivered to every subscriber.
type Envelope struct {
	Event string  `json:"event"`
	Data  Payload `json:"data"`
	TS    string  `json:"ts"`
}

// NewEnvelope wraps a payload with its tag and an ISO-8601 timestamp.
func NewEnvelope(p Payload) Envelope {
	return Envelope{
		Event: p.EventType(),
		Data:  p,
		TS:    time.Now().UTC().Format(time.RFC3339),
	}
}

// Broadcaster fans an event out to all live subscribers. Implemented
// by stream.Hub; services depend on this interface so they can be
// tested with a recording fake.
type Broadcaster interface {
	Broadcast(p Payload)
}

// ConnectionAck is the registration acknowledgement payload.
type ConnectionAck struct {
	MenuVersion uint64 `json:"menuVersion"`
}

func (ConnectionAck) EventType() string { return TypeConnectionAck }
