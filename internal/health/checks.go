package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/pkg/backend"
	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

type Endpoints struct {
	Backend backend.Client
	// Store is probed when set; the bolt store has nothing remote to reach.
	Store func(ctx context.Context) error
}

func NewHealthHandler(cfg *config.Config, version string, endpoints *Endpoints) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "backend",
			Timeout:   5 * time.Second,
			SkipOnErr: false,
			Check: func(ctx context.Context) error {
				if endpoints.Backend == nil {
					return fmt.Errorf("backend client is not initialized")
				}
				if err := endpoints.Backend.Ping(ctx); err != nil {
					return fmt.Errorf("backend unreachable: %w", err)
				}
				return nil
			},
		},
	}

	if cfg.Storage.Driver == config.StorageDriverRedis {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		})
	}

	if endpoints.Store != nil {
		checks = append(checks, health.Config{
			Name:      "store",
			Timeout:   2 * time.Second,
			SkipOnErr: true,
			Check:     endpoints.Store,
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "storefront",
			Version: version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
