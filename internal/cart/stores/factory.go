package stores

import (
	"fmt"

	"github.com/angelmondragon/roxi-storefront/internal/cart"
	"github.com/angelmondragon/roxi-storefront/pkg/config"
	"github.com/angelmondragon/roxi-storefront/pkg/logger"
	"github.com/angelmondragon/roxi-storefront/pkg/metrics"
	"github.com/angelmondragon/roxi-storefront/pkg/redis"
	"gorm.io/gorm"
)

// Deps carries the connections a backend may need.
type Deps struct {
	Redis   *redis.Client
	DB      *gorm.DB
	Metrics *metrics.CartMetrics
	Logger  *logger.Logger
}

// New returns the StoreFactory for the configured backend.
func New(cfg config.CartConfig, deps Deps) (cart.StoreFactory, error) {
	switch cfg.NormalizedBackend() {
	case config.CartBackendMemory, "":
		return NewMemory(deps.Metrics, deps.Logger), nil
	case config.CartBackendRedis:
		if deps.Redis == nil {
			return nil, fmt.Errorf("redis client required for the redis cart backend")
		}
		return NewRedis(deps.Redis, cfg.TTL, deps.Metrics, deps.Logger), nil
	case config.CartBackendSQL:
		if deps.DB == nil {
			return nil, fmt.Errorf("database required for the sql cart backend")
		}
		return NewSQL(deps.DB, deps.Metrics, deps.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported cart backend %q", cfg.Backend)
	}
}
