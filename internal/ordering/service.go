// internal/ordering/service.go
package ordering

import (
	"context"

	"tapline/internal/store"
)

// Service defines the interface for the order pipeline.
type Service interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*store.Order, error)
	GetOrder(ctx context.Context, id string) (*store.Order, error)
	ListOrders(ctx context.Context) ([]*store.Order, error)
}
