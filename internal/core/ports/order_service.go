package ports

import (
	"context"

	"github.com/99minutos/storefront/internal/core/domain"
)

// OrderItemInput is one requested order line. The product snapshot is
// taken from the catalogue, not from the request.
type OrderItemInput struct {
	ProductID string
	Quantity  int
}

// CreateOrderInput carries the items of a new order. The owner is always
// the authenticated actor.
type CreateOrderInput struct {
	Items []OrderItemInput
}

// OrderService defines use-case operations for orders. Visibility is scoped
// by actor: customers only ever see their own orders.
type OrderService interface {
	List(ctx context.Context, actor *domain.User) ([]*domain.Order, error)
	Get(ctx context.Context, actor *domain.User, id string) (*domain.Order, error)
	Create(ctx context.Context, actor *domain.User, input CreateOrderInput) (*domain.Order, error)
}
