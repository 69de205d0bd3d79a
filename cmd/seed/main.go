// Command seed resets the users and products collections from JSON fixtures.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/core/service"
	mongodb "github.com/99minutos/storefront/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/storefront/internal/infrastructure/db/redis"
	"github.com/99minutos/storefront/internal/pkg/config"
	"github.com/99minutos/storefront/pkg/logger"
)

type userFixture struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type productFixture struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

func main() {
	usersPath := flag.String("users", "fixtures/users.json", "user fixtures")
	productsPath := flag.String("products", "fixtures/products.json", "product fixtures")
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "storefront-seed"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := seed(ctx, cfg, log, *usersPath, *productsPath); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func seed(ctx context.Context, cfg *config.Config, log zerolog.Logger, usersPath, productsPath string) error {
	var users []userFixture
	if err := readJSON(usersPath, &users); err != nil {
		return err
	}
	var products []productFixture
	if err := readJSON(productsPath, &products); err != nil {
		return err
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	if err := mongodb.EnsureIndexes(ctx, userRepo); err != nil {
		return err
	}

	if err := userRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	if err := productRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}

	var cache ports.ProductCache
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, cached product list not cleared")
		} else {
			defer rdb.Close()
			cache = redisdb.NewProductCache(rdb, cfg.Redis.ProductTTL)
		}
	}

	userService := service.NewUserService(userRepo, log)
	for _, u := range users {
		if _, err := userService.Import(ctx, u.Name, u.Email, u.Password, u.Role); err != nil {
			return fmt.Errorf("user %s: %w", u.Email, err)
		}
	}

	productService := service.NewProductService(productRepo, cache, log)
	for _, p := range products {
		if _, err := productService.Create(ctx, ports.CreateProductInput{
			Name:        p.Name,
			Price:       p.Price,
			Image:       p.Image,
			Description: p.Description,
		}); err != nil {
			return fmt.Errorf("product %q: %w", p.Name, err)
		}
	}

	log.Info().Int("users", len(users)).Int("products", len(products)).Msg("database seeded")
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
