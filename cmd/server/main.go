// @title                       Storefront API
// @version                     1.0
// @description                 Users, products and orders behind HTTP Basic authentication.
// @BasePath                    /
// @securityDefinitions.basic   BasicAuth
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/api"
	"github.com/99minutos/storefront/internal/api/handler"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/core/service"
	mongodb "github.com/99minutos/storefront/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/storefront/internal/infrastructure/db/redis"
	natsmsg "github.com/99minutos/storefront/internal/infrastructure/messaging/nats"
	"github.com/99minutos/storefront/internal/infrastructure/queue"
	"github.com/99minutos/storefront/internal/pkg/config"
	"github.com/99minutos/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "storefront",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	if err := mongodb.EnsureIndexes(ctx, userRepo, orderRepo); err != nil {
		return err
	}

	readiness := map[string]handler.DependencyCheck{
		"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
	}

	// --- Redis (optional product cache) ---
	var cache ports.ProductCache
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		cache = redisdb.NewProductCache(rdb, cfg.Redis.ProductTTL)
		readiness["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		log.Warn().Msg("REDIS_ADDR not set, product cache disabled")
	}

	// --- NATS (optional order events) ---
	var events ports.OrderEventSink
	var dispatcher *queue.Dispatcher
	if cfg.NATS.URL != "" {
		nc, err := natsmsg.Connect(natsmsg.Config{URL: cfg.NATS.URL, Subject: cfg.NATS.Subject}, log)
		if err != nil {
			return err
		}
		defer nc.Drain()

		publisher, err := natsmsg.NewOrderEventPublisher(nc, cfg.NATS.Subject)
		if err != nil {
			return err
		}
		dispatcher = queue.NewDispatcher(cfg.Events.Workers, publisher, log)
		events = dispatcher
		readiness["nats"] = func(context.Context) error {
			if nc.Status() != natsgo.CONNECTED {
				return fmt.Errorf("nats %s", nc.Status())
			}
			return nil
		}
	} else {
		log.Warn().Msg("NATS_URL not set, order events disabled")
	}

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, log)
	productService := service.NewProductService(productRepo, cache, log)
	orderService := service.NewOrderService(orderRepo, productRepo, events, log)

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		if _, _, err := userService.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if dispatcher != nil {
		dispatcher.Start(workerCtx)
	}

	e := api.NewRouter(api.Dependencies{
		Auth:      authService,
		Users:     userService,
		Products:  productService,
		Orders:    orderService,
		Readiness: readiness,
		Logger:    log,
		PublicDir: cfg.PublicDir,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	stopWorkers()
	if dispatcher != nil {
		dispatcher.Wait()
	}
	return nil
}
