package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/roxi-storefront/api/controllers"
	"github.com/angelmondragon/roxi-storefront/api/middleware"
	"github.com/angelmondragon/roxi-storefront/api/routes"
	"github.com/angelmondragon/roxi-storefront/internal/cart"
	"github.com/angelmondragon/roxi-storefront/internal/cart/stores"
	"github.com/angelmondragon/roxi-storefront/internal/catalog"
	"github.com/angelmondragon/roxi-storefront/pkg/config"
	"github.com/angelmondragon/roxi-storefront/pkg/db"
	"github.com/angelmondragon/roxi-storefront/pkg/instance"
	"github.com/angelmondragon/roxi-storefront/pkg/logger"
	"github.com/angelmondragon/roxi-storefront/pkg/metrics"
	"github.com/angelmondragon/roxi-storefront/pkg/migrate"
	"github.com/angelmondragon/roxi-storefront/pkg/money"
	"github.com/angelmondragon/roxi-storefront/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := stores.Deps{Logger: logg}
	var dbPinger controllers.Pinger

	backend := cfg.Cart.NormalizedBackend()
	if backend == config.CartBackendSQL {
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()

		if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
			logg.Error(ctx, "failed to run migrations", err)
			os.Exit(1)
		}
		deps.DB = dbClient.DB()
		dbPinger = dbClient
	}

	// Redis backs the redis cart store and, when configured, the add-to-cart
	// rate limit for any backend.
	var redisClient *redis.Client
	if backend == config.CartBackendRedis || cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		deps.Redis = redisClient
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	cartMetrics := metrics.NewCartMetrics(registry)
	deps.Metrics = cartMetrics

	factory, err := stores.New(cfg.Cart, deps)
	if err != nil {
		logg.Error(ctx, "failed to create cart store", err)
		os.Exit(1)
	}

	locale := money.LocaleFor(cfg.Currency.Locale)
	formatter := money.NewFormatter(cfg.Currency.Symbol, locale)

	cartService, err := cart.NewService(cart.ServiceParams{
		Stores:     factory,
		StorageKey: cfg.Cart.StorageKey,
		Formatter:  formatter,
		Metrics:    cartMetrics,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	var base *url.URL
	if cfg.Catalog.BaseURL != "" {
		base, err = url.Parse(cfg.Catalog.BaseURL)
		if err != nil {
			logg.Error(ctx, "invalid catalog base url", err)
			os.Exit(1)
		}
	}
	scanner := catalog.NewScanner(money.NewParser(locale), base)
	cat := catalog.New()
	if err := cat.LoadFile(ctx, scanner, cfg.Catalog.PagePath, logg); err != nil {
		logg.Error(ctx, "failed to load storefront page", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:     cfg,
		Logger:     logg,
		Cart:       cartService,
		Catalog:    cat,
		Scanner:    scanner,
		Formatter:  formatter,
		Redis:      redisClient,
		DB:         dbPinger,
		Gatherer:   registry,
		CartCookie: middleware.NewCartCookie(cfg.Cart.CookieSecret, cfg.Cart.CookieName, cfg.Cart.CookieSecure, cfg.Cart.TTL),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":          cfg.App.Env,
		"addr":         addr,
		"instance":     instance.GetID(),
		"cart_backend": backend,
		"locale":       locale.Tag.String(),
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(logCtx, "api server shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(logCtx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(logCtx, "api server stopped")
}
