package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/roxi-storefront/api/controllers"
	cartcontrollers "github.com/angelmondragon/roxi-storefront/api/controllers/cart"
	catalogcontrollers "github.com/angelmondragon/roxi-storefront/api/controllers/catalog"
	"github.com/angelmondragon/roxi-storefront/api/middleware"
	"github.com/angelmondragon/roxi-storefront/internal/cart"
	"github.com/angelmondragon/roxi-storefront/internal/catalog"
	"github.com/angelmondragon/roxi-storefront/pkg/config"
	"github.com/angelmondragon/roxi-storefront/pkg/logger"
	"github.com/angelmondragon/roxi-storefront/pkg/money"
	"github.com/angelmondragon/roxi-storefront/pkg/redis"
)

const cartAddPolicy = "cart_add"

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	Cart       cart.Service
	Catalog    *catalog.Catalog
	Scanner    *catalog.Scanner
	Formatter  money.Formatter
	Redis      *redis.Client
	DB         controllers.Pinger
	Gatherer   prometheus.Gatherer
	CartCookie *middleware.CartCookie
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.AllowedOrigins),
	)

	pingers := map[string]controllers.Pinger{}
	if d.Redis != nil {
		pingers["redis"] = d.Redis
	}
	if d.DB != nil {
		pingers["db"] = d.DB
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/", controllers.HealthReady(cfg, logg, pingers))
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers))
	})

	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/api/public/ping", controllers.PublicPing())

	limitCartAdds := func(next http.Handler) http.Handler { return next }
	if d.Redis != nil {
		limitCartAdds = middleware.CartRateLimit(cartAddPolicy, d.Redis, cfg.Cart.AddRateLimit, cfg.Cart.AddRateWindow, logg)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CartSession(d.CartCookie, logg))

		r.Get("/ping", controllers.SessionPing())

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(d.Cart, logg))
			r.Delete("/", cartcontrollers.CartClear(d.Cart, logg))
			r.Get("/count", cartcontrollers.CartCount(d.Cart, logg))
			r.With(limitCartAdds).
				Post("/items", cartcontrollers.CartAddItem(d.Cart, cfg.UI.NotificationDuration, logg))
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", catalogcontrollers.CatalogFetch(d.Catalog))
			r.Post("/scan", catalogcontrollers.CatalogScan(d.Catalog, d.Scanner, cfg.Catalog.ScanReplace, logg))
			r.Get("/search", catalogcontrollers.CatalogSearch(d.Catalog, logg))
			r.Get("/filter", catalogcontrollers.CatalogFilter(d.Catalog, logg))
			r.With(limitCartAdds).
				Post("/{source}/{position}/cart", catalogcontrollers.CatalogLightboxAdd(d.Catalog, d.Cart, d.Formatter, cfg.UI.NotificationDuration, logg))
		})
	})

	return r
}
