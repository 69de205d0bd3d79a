package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/pkg/metrics"
)

type OrderService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	events   ports.OrderEventSink // optional
	logger   zerolog.Logger
}

// NewOrderService returns an OrderService. events may be nil, in which case
// no order events are emitted.
func NewOrderService(orders ports.OrderRepository, products ports.ProductRepository, events ports.OrderEventSink, logger zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, products: products, events: events, logger: logger}
}

// List returns every order for admins and the actor's own orders otherwise.
func (s *OrderService) List(ctx context.Context, actor *domain.User) ([]*domain.Order, error) {
	if actor == nil {
		return nil, domain.ErrForbidden
	}
	if actor.IsAdmin() {
		return s.orders.List(ctx, "")
	}
	return s.orders.List(ctx, actor.ID)
}

// Get hides other customers' orders behind ErrOrderNotFound.
func (s *OrderService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Order, error) {
	if actor == nil {
		return nil, domain.ErrForbidden
	}

	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !o.OwnedBy(actor.ID) {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

// Create places an order for the actor. Each item snapshots the catalogue
// product at the time of the call.
func (s *OrderService) Create(ctx context.Context, actor *domain.User, in ports.CreateOrderInput) (*domain.Order, error) {
	if actor == nil || actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only customers can place orders", domain.ErrForbidden)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", domain.ErrInvalidInput)
	}

	items := make([]domain.OrderItem, 0, len(in.Items))
	for i, it := range in.Items {
		if it.ProductID == "" {
			return nil, fmt.Errorf("%w: items[%d]: product id is required", domain.ErrInvalidInput, i)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: items[%d]: quantity must be greater than 0", domain.ErrInvalidInput, i)
		}

		p, err := s.products.FindByID(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: items[%d]: unknown product %s", domain.ErrInvalidInput, i, it.ProductID)
			}
			return nil, fmt.Errorf("create order: %w", err)
		}
		items = append(items, domain.OrderItem{Product: p.Snapshot(), Quantity: it.Quantity})
	}

	created, err := s.orders.Create(ctx, &domain.Order{
		CustomerID: actor.ID,
		Items:      items,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create order")
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	s.logger.Info().Str("order_id", created.ID).Str("customer_id", actor.ID).Msg("order created")

	s.emit(created)
	return created, nil
}

func (s *OrderService) emit(o *domain.Order) {
	if s.events == nil {
		return
	}

	event := domain.OrderEvent{
		ID:         uuid.NewString(),
		Type:       domain.EventOrderCreated,
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		ItemCount:  len(o.Items),
		Total:      o.Total(),
		OccurredAt: time.Now().UTC(),
	}
	if !s.events.Enqueue(event) {
		s.logger.Warn().Str("order_id", o.ID).Msg("order event dropped, queue full")
	}
}
