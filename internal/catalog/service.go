// internal/catalog/service.go
package catalog

import (
	"context"

	"tapline/internal/store"
)

// Service defines the interface for catalog management: item CRUD,
// guardrailed price updates, promotions and menu publishing.
type Service interface {
	CreateItem(ctx context.Context, req ItemRequest) (*store.Item, error)
	GetItem(ctx context.Context, id string) (*store.Item, error)
	ListItems(ctx context.Context) ([]*store.Item, error)
	UpdateItem(ctx context.Context, id string, req ItemRequest) (*store.Item, error)
	DeleteItem(ctx context.Context, id string) error
	UpdatePrice(ctx context.Context, id string, req PriceUpdateRequest) (*store.Item, error)
	CreatePromotion(ctx context.Context, req PromotionRequest) (*store.Promotion, error)
	ListPromotions(ctx context.Context) ([]*store.Promotion, error)
	PublishMenu(ctx context.Context) (uint64, error)
}
