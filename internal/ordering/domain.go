// internal/ordering/domain.go
package ordering

import "tapline/internal/events"

// LineRequest is one requested order line: an item reference and a
// quantity.
type LineRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"qty"`
}

// OrderRequest is the inbound create-order command.
type OrderRequest struct {
	Lines []LineRequest `json:"lines"`
}

// Totals are the aggregate figures of an order. Each field is rounded
// independently from the exact unrounded sums.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// OrderCreatedEvent is broadcast after an order is recorded.
type OrderCreatedEvent struct {
	OrderID   string  `json:"orderId"`
	LineCount int     `json:"lineCount"`
	Subtotal  float64 `json:"subtotal"`
	Tax       float64 `json:"tax"`
	Total     float64 `json:"total"`
}

func (OrderCreatedEvent) EventType() string { return events.TypeOrderCreated }

// Notifier abstracts the webhook delivery agent so the service can be
// tested without HTTP. Implementations must not block the caller.
type Notifier interface {
	Dispatch(event string, payload any)
}
