// Package store owns the in-memory authoritative state: catalog
// items, orders, promotions and the menu version counter. All state
// is volatile and reset on process restart.
package store

import "time"

// Item is a sellable catalog entry. The [MinPrice, MaxPrice] band is a
// soft invariant: it is enforced by the price guardrail on update, not
// at mutation time.
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Price     float64   `json:"price"`
	MinPrice  float64   `json:"minPrice"`
	MaxPrice  float64   `json:"maxPrice"`
	TaxRate   float64   `json:"taxRate"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Order statuses. The order pipeline only ever produces completed;
// pending and cancelled exist for parity with the external platform's
// order model.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// OrderLine captures an item at order time. Prices and quantities are
// frozen here and never change when the catalog does.
type OrderLine struct {
	ItemID    string  `json:"itemId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// Order is immutable once created.
type Order struct {
	ID        string      `json:"id"`
	Lines     []OrderLine `json:"lines"`
	Subtotal  float64     `json:"subtotal"`
	Tax       float64     `json:"tax"`
	Total     float64     `json:"total"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Promotion kinds.
const (
	PromotionPercentOff = "percent-off"
	PromotionAmountOff  = "amount-off"
)

// Promotion is an inert record: it is stored and broadcast but never
// applied to order totals.
type Promotion struct {
	ID        string     `json:"id"`
	ItemID    string     `json:"itemId"`
	Kind      string     `json:"kind"`
	Value     float64    `json:"value"`
	StartsAt  *time.Time `json:"startsAt,omitempty"`
	EndsAt    *time.Time `json:"endsAt,omitempty"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"createdAt"`
}
