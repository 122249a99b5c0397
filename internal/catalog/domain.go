// internal/catalog/domain.go
package catalog

import (
	"time"

	"tapline/internal/events"
)

// ItemRequest carries the mutable fields of a catalog item for create
// and update operations.
type ItemRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`
	TaxRate  float64 `json:"taxRate"`
	Active   *bool   `json:"active"`
}

// PriceUpdateRequest carries a proposed price for one item. Publish
// additionally bumps and broadcasts the menu version; override skips
// the guardrail check.
type PriceUpdateRequest struct {
	Price    float64 `json:"price"`
	Publish  bool    `json:"publish"`
	Override bool    `json:"overrideGuardrails"`
}

// PromotionRequest creates an inert promotion record.
type PromotionRequest struct {
	ItemID   string     `json:"itemId"`
	Kind     string     `json:"kind"`
	Value    float64    `json:"value"`
	StartsAt *time.Time `json:"startsAt"`
	EndsAt   *time.Time `json:"endsAt"`
}

// PriceUpdatedEvent is broadcast when an item's price changes.
type PriceUpdatedEvent struct {
	ItemID      string  `json:"itemId"`
	Name        string  `json:"name"`
	OldPrice    float64 `json:"oldPrice"`
	NewPrice    float64 `json:"newPrice"`
	MenuVersion uint64  `json:"menuVersion"`
}

func (PriceUpdatedEvent) EventType() string { return events.TypePriceUpdated }

// MenuPublishedEvent is broadcast on every menu version increment that
// publishes catalog state.
type MenuPublishedEvent struct {
	MenuVersion uint64 `json:"menuVersion"`
	ItemCount   int    `json:"itemCount"`
}

func (MenuPublishedEvent) EventType() string { return events.TypeMenuPublished }

// PromotionCreatedEvent is broadcast when a promotion is recorded.
type PromotionCreatedEvent struct {
	PromotionID string  `json:"promotionId"`
	ItemID      string  `json:"itemId"`
	Kind        string  `json:"kind"`
	Value       float64 `json:"value"`
}

func (PromotionCreatedEvent) EventType() string { return events.TypePromotionCreated }
