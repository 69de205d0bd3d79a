package ports

import (
	"context"

	"github.com/99minutos/storefront/internal/core/domain"
)

// CreateProductInput carries all data needed to add a product.
type CreateProductInput struct {
	Name        string
	Price       float64
	Image       string
	Description string
}

// UpdateProductInput is a partial update; nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string
	Price       *float64
	Image       *string
	Description *string
}

// ProductService defines use-case operations for the catalogue.
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) (*domain.Product, error)
}
