package ports

import (
	"context"

	"github.com/99minutos/storefront/internal/core/domain"
)

// ProductRepository defines persistence operations for the catalogue.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	// Update replaces the stored fields of an existing product.
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}

// ProductCache stores the full catalogue listing. A miss is reported as
// (nil, false, nil); errors are never fatal to callers.
type ProductCache interface {
	GetAll(ctx context.Context) ([]*domain.Product, bool, error)
	SetAll(ctx context.Context, products []*domain.Product) error
	Invalidate(ctx context.Context) error
}
