package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/ratelimit"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/state"
	"github.com/aaravmahajanofficial/storefront/internal/storage"
	"github.com/aaravmahajanofficial/storefront/internal/storage/boltstore"
	"github.com/aaravmahajanofficial/storefront/internal/storage/redisstore"
	"github.com/aaravmahajanofficial/storefront/pkg/backend"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// app is everything a command needs, wired from the loaded config.
type app struct {
	cfg     *config.Config
	store   storage.Store
	state   *state.Store
	backend backend.Client

	cart     service.CartService
	wishlist service.WishlistService
	checkout service.CheckoutService
	catalog  service.CatalogService
	auth     service.AuthService
	orders   service.OrderService
}

// openStore also returns the redis client when the redis driver is used;
// the login throttle needs it.
func openStore(cfg *config.Config) (storage.Store, *redis.Client, error) {

	switch cfg.Storage.Driver {
	case config.StorageDriverRedis:
		client, err := redisstore.NewClient(cfg.RedisConnect)
		if err != nil {
			return nil, nil, err
		}
		return redisstore.New(client), client, nil
	default:
		store, err := boltstore.Open(cfg.Storage.Path)
		return store, nil, err
	}
}

func authOptions(cfg *config.Config, client *redis.Client) []service.AuthOption {
	if client == nil || cfg.RateLimit.MaxAttempts <= 0 {
		return nil
	}

	limiter := ratelimit.NewLoginLimiter(client, cfg.RateLimit, cfg.Storage.Namespace, nil)

	return []service.AuthOption{service.WithLoginLimiter(limiter)}
}

// requestID reuses the correlation id of the view request, or starts a
// new one for terminal commands.
func requestID(ctx context.Context) string {
	if id := middleware.RequestID(ctx); id != "" {
		return id
	}

	return uuid.NewString()
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {

	store, redisClient, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Driver, err)
	}

	st, err := state.Open(ctx, store, cfg.Storage.Namespace)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	client := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout,
		backend.WithRequestID(requestID),
		backend.WithObserver(metrics.ObserveBackend),
	)

	slog.Debug("Storefront initialized",
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.Storage.Driver),
		slog.String("backend", cfg.Backend.BaseURL),
	)

	return &app{
		cfg:      cfg,
		store:    store,
		state:    st,
		backend:  client,
		cart:     service.NewCartService(st),
		wishlist: service.NewWishlistService(st),
		checkout: service.NewCheckoutService(client, st, service.CheckoutOptions{
			ConfirmationDelay:  cfg.Checkout.ConfirmationDelay,
			ClearCartOnSuccess: cfg.Checkout.ClearCartOnSuccess,
		}),
		catalog: service.NewCatalogService(client, st, cfg.Backend.ImageFallbackURL()),
		auth:    service.NewAuthService(client, st, nil, authOptions(cfg, redisClient)...),
		orders:  service.NewOrderService(st),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// storeCheck reads a key to prove the store answers.
func (a *app) storeCheck(ctx context.Context) error {
	var token string
	_, err := a.store.Get(ctx, storage.Key(a.cfg.Storage.Namespace, storage.TokenKey), &token)
	return err
}
