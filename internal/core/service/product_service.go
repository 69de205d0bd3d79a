package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/pkg/metrics"
)

type ProductService struct {
	repo   ports.ProductRepository
	cache  ports.ProductCache // optional
	logger zerolog.Logger
}

// NewProductService returns a ProductService. cache may be nil.
func NewProductService(repo ports.ProductRepository, cache ports.ProductCache, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, logger: logger}
}

// List serves the catalogue from cache when possible. Cache failures fall
// through to the repository.
func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	if s.cache != nil {
		products, ok, err := s.cache.GetAll(ctx)
		switch {
		case err != nil:
			metrics.ProductCacheTotal.WithLabelValues("error").Inc()
			s.logger.Warn().Err(err).Msg("product cache read failed")
		case ok:
			metrics.ProductCacheTotal.WithLabelValues("hit").Inc()
			return products, nil
		default:
			metrics.ProductCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetAll(ctx, products); err != nil {
			s.logger.Warn().Err(err).Msg("product cache write failed")
		}
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	p := &domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Image:       in.Image,
		Description: in.Description,
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	s.logger.Info().Str("product_id", created.ID).Msg("product created")
	return created, nil
}

// Update applies the non-nil fields of in to an existing product.
func (s *ProductService) Update(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	s.logger.Info().Str("product_id", p.ID).Msg("product updated")
	return p, nil
}

// Delete removes a product and returns the deleted record.
func (s *ProductService) Delete(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return p, nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("product cache invalidation failed")
	}
}

func validateProduct(p *domain.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price <= 0 {
		return fmt.Errorf("%w: price must be a positive number", domain.ErrInvalidInput)
	}
	return nil
}
