package stores

import (
	"context"

	"github.com/angelmondragon/roxi-storefront/internal/cart"
	"github.com/angelmondragon/roxi-storefront/pkg/logger"
	"github.com/angelmondragon/roxi-storefront/pkg/metrics"
)

// decodeOrEmpty applies the fail-open load policy: malformed payloads are
// logged, counted and read as an empty cart.
func decodeOrEmpty(ctx context.Context, logg *logger.Logger, m *metrics.CartMetrics, backend, key string, raw []byte) []cart.Item {
	items, err := cart.DecodeItems(raw)
	if err != nil {
		m.IncLoadFallback(metrics.FallbackDecode)
		ctx = logg.WithFields(ctx, map[string]any{"backend": backend, "storage_key": key})
		logg.WarnErr(ctx, "cart.load.malformed", err)
		return []cart.Item{}
	}
	return items
}

// backendFailure logs a read error and returns an empty cart.
func backendFailure(ctx context.Context, logg *logger.Logger, m *metrics.CartMetrics, backend, key string, err error) []cart.Item {
	m.IncLoadFallback(metrics.FallbackBackend)
	ctx = logg.WithFields(ctx, map[string]any{"backend": backend, "storage_key": key})
	logg.WarnErr(ctx, "cart.load.backend_error", err)
	return []cart.Item{}
}
