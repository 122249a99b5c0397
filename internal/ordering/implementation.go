// internal/ordering/implementation.go
package ordering

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tapline/internal/events"
	"tapline/internal/store"
	"tapline/internal/webhook"
)

// service implements the Service interface.
type service struct {
	store       *store.Store
	broadcaster events.Broadcaster
	notifier    Notifier
	venueID     string
	logger      *slog.Logger
	tracer      trace.Tracer
}

// NewService creates a new ordering service instance. notifier may be
// nil when no webhook endpoint is configured.
func NewService(st *store.Store, b events.Broadcaster, notifier Notifier, venueID string, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		store:       st,
		broadcaster: b,
		notifier:    notifier,
		venueID:     venueID,
		logger:      logger,
		tracer:      otel.Tracer("tapline/ordering"),
	}
}

// CreateOrder validates the request, computes totals against a catalog
// snapshot, records the order, broadcasts order.created, and hands the
// signed webhook to the delivery agent as fire-and-forget.
func (s *service) CreateOrder(ctx context.Context, req OrderRequest) (*store.Order, error) {
	ctx, span := s.tracer.Start(ctx, "ordering.create_order",
		trace.WithAttributes(attribute.Int("order.lines", len(req.Lines))),
	)
	defer span.End()

	if len(req.Lines) == 0 {
		return nil, &store.ValidationError{Field: "lines", Reason: "must not be empty"}
	}
	for i, line := range req.Lines {
		if line.ItemID == "" {
			return nil, &store.ValidationError{Field: fmt.Sprintf("lines[%d].itemId", i), Reason: "must not be empty"}
		}
		if line.Quantity <= 0 {
			return nil, &store.ValidationError{Field: fmt.Sprintf("lines[%d].qty", i), Reason: "must be a positive integer"}
		}
	}

	captured, totals, err := ComputeTotals(req.Lines, s.store.Snapshot())
	if err != nil {
		return nil, err
	}

	order := &store.Order{
		ID:        store.NewID(),
		Lines:     captured,
		Subtotal:  totals.Subtotal,
		Tax:       totals.Tax,
		Total:     totals.Total,
		Status:    store.OrderStatusCompleted,
		CreatedAt: time.Now().UTC(),
	}
	s.store.InsertOrder(order)

	// Broadcast happens synchronously before the response: a 2xx to
	// the caller guarantees the fan-out was at least attempted.
	s.broadcaster.Broadcast(OrderCreatedEvent{
		OrderID:   order.ID,
		LineCount: len(order.Lines),
		Subtotal:  order.Subtotal,
		Tax:       order.Tax,
		Total:     order.Total,
	})

	if s.notifier != nil {
		s.notifier.Dispatch(events.TypeOrderCreated, s.webhookPayload(order))
	}

	span.SetAttributes(attribute.String("order.id", order.ID))
	s.logger.Info("order created",
		"order_id", order.ID,
		"lines", len(order.Lines),
		"total", order.Total,
	)
	return order, nil
}

func (s *service) webhookPayload(order *store.Order) webhook.OrderPayload {
	lines := make([]webhook.PayloadLine, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, webhook.PayloadLine{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return webhook.OrderPayload{
		OrderID:   order.ID,
		VenueID:   s.venueID,
		Timestamp: order.CreatedAt.Format(time.RFC3339),
		Lines:     lines,
		Subtotal:  order.Subtotal,
		Tax:       order.Tax,
		Total:     order.Total,
	}
}

// GetOrder retrieves an order by its ID.
func (s *service) GetOrder(ctx context.Context, id string) (*store.Order, error) {
	return s.store.GetOrder(id)
}

// ListOrders returns all orders in creation order.
func (s *service) ListOrders(ctx context.Context) ([]*store.Order, error) {
	return s.store.ListOrders(), nil
}
