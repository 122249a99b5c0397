// internal/catalog/implementation.go
package catalog

import (
	"context"
	"log/slog"
	"time"

	"tapline/internal/events"
	"tapline/internal/money"
	"tapline/internal/store"
)

// service implements the Service interface.
type service struct {
	store       *store.Store
	broadcaster events.Broadcaster
	logger      *slog.Logger
}

// NewService creates a new catalog service instance.
func NewService(st *store.Store, b events.Broadcaster, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{store: st, broadcaster: b, logger: logger}
}

func validateItemRequest(req ItemRequest) error {
	switch {
	case req.Name == "":
		return &store.ValidationError{Field: "name", Reason: "must not be empty"}
	case req.Price < 0:
		return &store.ValidationError{Field: "price", Reason: "must not be negative"}
	case req.MinPrice < 0 || req.MaxPrice < 0:
		return &store.ValidationError{Field: "minPrice/maxPrice", Reason: "must not be negative"}
	case req.MaxPrice > 0 && req.MinPrice > req.MaxPrice:
		return &store.ValidationError{Field: "minPrice", Reason: "must not exceed maxPrice"}
	case req.TaxRate < 0 || req.TaxRate >= 1:
		return &store.ValidationError{Field: "taxRate", Reason: "must be a fraction in [0,1)"}
	}
	return nil
}

// CreateItem adds a new item to the catalog and bumps the menu version.
func (s *service) CreateItem(ctx context.Context, req ItemRequest) (*store.Item, error) {
	if err := validateItemRequest(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	item := &store.Item{
		ID:        store.NewID(),
		Name:      req.Name,
		Category:  req.Category,
		Price:     money.Round(req.Price),
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
		TaxRate:   req.TaxRate,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	version := s.store.PutItem(item)
	s.broadcaster.Broadcast(MenuPublishedEvent{MenuVersion: version, ItemCount: len(s.store.ListItems())})
	s.logger.Info("catalog item created", "item_id", item.ID, "name", item.Name, "menu_version", version)
	return item, nil
}

// GetItem retrieves an item from the catalog by its ID.
func (s *service) GetItem(ctx context.Context, id string) (*store.Item, error) {
	return s.store.GetItem(id)
}

// ListItems returns all catalog items.
func (s *service) ListItems(ctx context.Context) ([]*store.Item, error) {
	return s.store.ListItems(), nil
}

// UpdateItem replaces an item's mutable fields and bumps the menu
// version. The price guardrail is not consulted here; it applies only
// to the dedicated price-update operation.
func (s *service) UpdateItem(ctx context.Context, id string, req ItemRequest) (*store.Item, error) {
	if err := validateItemRequest(req); err != nil {
		return nil, err
	}

	item, err := s.store.GetItem(id)
	if err != nil {
		return nil, err
	}

	item.Name = req.Name
	item.Category = req.Category
	item.Price = money.Round(req.Price)
	item.MinPrice = req.MinPrice
	item.MaxPrice = req.MaxPrice
	item.TaxRate = req.TaxRate
	if req.Active != nil {
		item.Active = *req.Active
	}
	item.UpdatedAt = time.Now().UTC()

	version := s.store.PutItem(item)
	s.broadcaster.Broadcast(MenuPublishedEvent{MenuVersion: version, ItemCount: len(s.store.ListItems())})
	s.logger.Info("catalog item updated", "item_id", id, "menu_version", version)
	return item, nil
}

// DeleteItem removes the record entirely and bumps the menu version.
func (s *service) DeleteItem(ctx context.Context, id string) error {
	version, err := s.store.DeleteItem(id)
	if err != nil {
		return err
	}
	s.broadcaster.Broadcast(MenuPublishedEvent{MenuVersion: version, ItemCount: len(s.store.ListItems())})
	s.logger.Info("catalog item deleted", "item_id", id, "menu_version", version)
	return nil
}

// UpdatePrice validates the proposed price against the item's
// guardrail band, applies it, and broadcasts the change. With
// req.Publish set the menu version is bumped a second time and a
// menu.published event follows the price.updated one.
func (s *service) UpdatePrice(ctx context.Context, id string, req PriceUpdateRequest) (*store.Item, error) {
	if req.Price < 0 {
		return nil, &store.ValidationError{Field: "price", Reason: "must not be negative"}
	}

	item, err := s.store.GetItem(id)
	if err != nil {
		return nil, err
	}

	if err := ValidatePrice(item, req.Price, req.Override); err != nil {
		return nil, err
	}

	oldPrice := item.Price
	item.Price = money.Round(req.Price)
	item.UpdatedAt = time.Now().UTC()

	version := s.store.PutItem(item)
	s.broadcaster.Broadcast(PriceUpdatedEvent{
		ItemID:      item.ID,
		Name:        item.Name,
		OldPrice:    oldPrice,
		NewPrice:    item.Price,
		MenuVersion: version,
	})
	s.logger.Info("price updated", "item_id", id, "old_price", oldPrice, "new_price", item.Price, "override", req.Override)

	if req.Publish {
		published := s.store.BumpMenuVersion()
		s.broadcaster.Broadcast(MenuPublishedEvent{MenuVersion: published, ItemCount: len(s.store.ListItems())})
	}
	return item, nil
}

// CreatePromotion records an inert promotion. Promotions are broadcast
// but never applied to order totals.
func (s *service) CreatePromotion(ctx context.Context, req PromotionRequest) (*store.Promotion, error) {
	if req.ItemID == "" {
		return nil, &store.ValidationError{Field: "itemId", Reason: "must not be empty"}
	}
	if req.Kind != store.PromotionPercentOff && req.Kind != store.PromotionAmountOff {
		return nil, &store.ValidationError{Field: "kind", Reason: "must be percent-off or amount-off"}
	}
	if req.Value <= 0 {
		return nil, &store.ValidationError{Field: "value", Reason: "must be positive"}
	}
	if req.Kind == store.PromotionPercentOff && req.Value > 100 {
		return nil, &store.ValidationError{Field: "value", Reason: "percent-off must not exceed 100"}
	}
	if req.StartsAt != nil && req.EndsAt != nil && !req.StartsAt.Before(*req.EndsAt) {
		return nil, &store.ValidationError{Field: "startsAt", Reason: "must precede endsAt"}
	}
	if _, err := s.store.GetItem(req.ItemID); err != nil {
		return nil, err
	}

	promo := &store.Promotion{
		ID:        store.NewID(),
		ItemID:    req.ItemID,
		Kind:      req.Kind,
		Value:     req.Value,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	s.store.InsertPromotion(promo)
	s.broadcaster.Broadcast(PromotionCreatedEvent{
		PromotionID: promo.ID,
		ItemID:      promo.ItemID,
		Kind:        promo.Kind,
		Value:       promo.Value,
	})
	s.logger.Info("promotion created", "promotion_id", promo.ID, "item_id", promo.ItemID, "kind", promo.Kind)
	return promo, nil
}

// ListPromotions returns all recorded promotions.
func (s *service) ListPromotions(ctx context.Context) ([]*store.Promotion, error) {
	return s.store.ListPromotions(), nil
}

// PublishMenu bumps the menu version and broadcasts the new generation.
func (s *service) PublishMenu(ctx context.Context) (uint64, error) {
	version := s.store.BumpMenuVersion()
	s.broadcaster.Broadcast(MenuPublishedEvent{MenuVersion: version, ItemCount: len(s.store.ListItems())})
	s.logger.Info("menu published", "menu_version", version)
	return version, nil
}
