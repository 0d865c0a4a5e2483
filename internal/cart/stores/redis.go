package stores

import (
	"context"
	"time"

	"github.com/angelmondragon/roxi-storefront/internal/cart"
	"github.com/angelmondragon/roxi-storefront/pkg/logger"
	"github.com/angelmondragon/roxi-storefront/pkg/metrics"
	"github.com/angelmondragon/roxi-storefront/pkg/redis"
)

const BackendRedis = "redis"

type kvClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(storageKey string) string
}

// Redis stores each cart as a JSON string, refreshing its TTL on every save.
type Redis struct {
	client  kvClient
	ttl     time.Duration
	metrics *metrics.CartMetrics
	logg    *logger.Logger
}

func NewRedis(client kvClient, ttl time.Duration, m *metrics.CartMetrics, logg *logger.Logger) *Redis {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Redis{client: client, ttl: ttl, metrics: m, logg: logg}
}

func (r *Redis) Backend() string { return BackendRedis }

func (r *Redis) ForKey(key string) cart.Store {
	return &redisStore{parent: r, key: r.client.CartKey(key)}
}

type redisStore struct {
	parent *Redis
	key    string
}

func (s *redisStore) Load(ctx context.Context) []cart.Item {
	start := time.Now()
	defer func() { s.parent.metrics.ObserveStore(BackendRedis, "load", time.Since(start)) }()

	raw, err := s.parent.client.Get(ctx, s.key)
	if err != nil {
		if redis.IsNil(err) {
			return []cart.Item{}
		}
		return backendFailure(ctx, s.parent.logg, s.parent.metrics, BackendRedis, s.key, err)
	}
	return decodeOrEmpty(ctx, s.parent.logg, s.parent.metrics, BackendRedis, s.key, []byte(raw))
}

func (s *redisStore) Save(ctx context.Context, items []cart.Item) error {
	start := time.Now()
	defer func() { s.parent.metrics.ObserveStore(BackendRedis, "save", time.Since(start)) }()

	payload, err := cart.EncodeItems(items)
	if err != nil {
		return err
	}
	return s.parent.client.Set(ctx, s.key, string(payload), s.parent.ttl)
}

func (s *redisStore) Clear(ctx context.Context) error {
	return s.parent.client.Del(ctx, s.key)
}
