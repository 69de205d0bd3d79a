package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/storefront/internal/core/domain"
)

const (
	productListKey    = "products:all"
	defaultProductTTL = 5 * time.Minute
)

// ProductCache stores the serialized catalogue under a single key.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCache wraps client. A non-positive ttl falls back to five minutes.
func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = defaultProductTTL
	}
	return &ProductCache{client: client, ttl: ttl}
}

func (c *ProductCache) GetAll(ctx context.Context) ([]*domain.Product, bool, error) {
	raw, err := c.client.Get(ctx, productListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("product cache get: %w", err)
	}

	var products []*domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		_ = c.Invalidate(ctx)
		return nil, false, fmt.Errorf("product cache decode: %w", err)
	}
	return products, true, nil
}

func (c *ProductCache) SetAll(ctx context.Context, products []*domain.Product) error {
	if products == nil {
		products = []*domain.Product{}
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("product cache encode: %w", err)
	}
	if err := c.client.Set(ctx, productListKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("product cache set: %w", err)
	}
	return nil
}

func (c *ProductCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, productListKey).Err(); err != nil {
		return fmt.Errorf("product cache invalidate: %w", err)
	}
	return nil
}
