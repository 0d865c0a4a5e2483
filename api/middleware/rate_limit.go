package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/roxi-storefront/api/responses"
	pkgerrors "github.com/angelmondragon/roxi-storefront/pkg/errors"
	"github.com/angelmondragon/roxi-storefront/pkg/logger"
)

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// CartRateLimit caps requests per cart id with a fixed window counter. It is a
// pass-through when the limiter is nil or the policy is disabled. Limiter
// failures let the request through.
func CartRateLimit(name string, limiter rateLimiter, limit int, window time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil || limit <= 0 || window <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			cartID := CartIDFromContext(ctx)
			if cartID == "" {
				next.ServeHTTP(w, r)
				return
			}

			allowed, count, err := limiter.FixedWindowAllow(ctx, name+":"+cartID, int64(limit), window)
			if err != nil {
				if logg != nil {
					logg.WarnErr(ctx, "cart.rate_limit.unavailable", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				if logg != nil {
					logg.Warn(logg.WithFields(ctx, map[string]any{
						"policy":         name,
						"attempts":       count,
						"limit":          limit,
						"window_seconds": int(window.Seconds()),
					}), "cart.rate_limit.blocked")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many cart updates, try again shortly"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
