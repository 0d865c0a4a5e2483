package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/roxi-storefront/api/responses"
	"github.com/angelmondragon/roxi-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/roxi-storefront/pkg/errors"
	"github.com/angelmondragon/roxi-storefront/pkg/logger"
)

const envHeader = "X-Roxi-Env"

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every configured dependency. Nil pingers are skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{}
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable").
					WithDetails(map[string]any{"dependency": name}))
				return
			}
			checks[name] = "ok"
		}
		responses.WriteSuccess(w, map[string]any{
			"status":       "ready",
			"cart_backend": cfg.Cart.NormalizedBackend(),
			"checks":       checks,
		})
	}
}
