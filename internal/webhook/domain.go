// internal/webhook/domain.go
package webhook

// Delivery states. A delivery starts Pending, cycles through
// Sending/Retrying, and terminates as Success or ExhaustedFailure.
type State string

const (
	StatePending   State = "pending"
	StateSending   State = "sending"
	StateRetrying  State = "retrying"
	StateSuccess   State = "success"
	StateExhausted State = "exhausted_failure"
)

// Result reports the terminal outcome of one delivery.
type Result struct {
	DeliveryID string
	State      State
	Attempts   int
	Err        error
}

// PayloadLine is one order line as transmitted to the receiver.
type PayloadLine struct {
	ItemID    string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderPayload is the body of an order.created webhook. The serialized
// bytes of this struct are signed and transmitted unchanged.
type OrderPayload struct {
	OrderID   string        `json:"order_id"`
	VenueID   string        `json:"venue_id"`
	Timestamp string        `json:"timestamp"`
	Lines     []PayloadLine `json:"lines"`
	Subtotal  float64       `json:"subtotal"`
	Tax       float64       `json:"tax"`
	Total     float64       `json:"total"`
}
