package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Cart     CartConfig
	Currency CurrencyConfig
	Redis    RedisConfig
	DB       DBConfig
	Catalog  CatalogConfig
	UI       UIConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env            string   `envconfig:"ROXI_APP_ENV" required:"true"`
	Port           string   `envconfig:"ROXI_APP_PORT" default:"8080"`
	LogLevel       string   `envconfig:"ROXI_LOG_LEVEL" default:"info"`
	LogWarnStack   bool     `envconfig:"ROXI_LOG_WARN_STACK" default:"false"`
	AllowedOrigins []string `envconfig:"ROXI_ALLOWED_ORIGINS" default:"http://localhost:5500"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CartConfig selects the cart persistence backend and its addressing.
type CartConfig struct {
	Backend      string        `envconfig:"ROXI_CART_BACKEND" default:"memory"`
	StorageKey   string        `envconfig:"ROXI_CART_STORAGE_KEY" default:"roxi_cart_v1"`
	TTL          time.Duration `envconfig:"ROXI_CART_TTL" default:"720h"`
	CookieName   string        `envconfig:"ROXI_CART_COOKIE_NAME" default:"roxi_cart"`
	CookieSecret string        `envconfig:"ROXI_CART_COOKIE_SECRET" required:"true"`
	CookieSecure bool          `envconfig:"ROXI_CART_COOKIE_SECURE" default:"false"`

	// AddRateLimit caps add-to-cart requests per cart id within AddRateWindow.
	// Zero disables the limit; it is only enforced when redis is configured.
	AddRateLimit  int           `envconfig:"ROXI_CART_ADD_RATE_LIMIT" default:"0"`
	AddRateWindow time.Duration `envconfig:"ROXI_CART_ADD_RATE_WINDOW" default:"1m"`
}

// NormalizedBackend returns the lower-cased backend name.
func (c CartConfig) NormalizedBackend() string {
	return strings.ToLower(strings.TrimSpace(c.Backend))
}

type CurrencyConfig struct {
	Symbol string `envconfig:"ROXI_CURRENCY_SYMBOL" default:"Bs"`
	Locale string `envconfig:"ROXI_CURRENCY_LOCALE" default:"es-BO"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ROXI_REDIS_URL"`
	Address      string        `envconfig:"ROXI_REDIS_ADDR"`
	Password     string        `envconfig:"ROXI_REDIS_PASSWORD"`
	DB           int           `envconfig:"ROXI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ROXI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ROXI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ROXI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ROXI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ROXI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type DBConfig struct {
	Driver          string        `envconfig:"ROXI_DB_DRIVER" default:"sqlite"`
	DSN             string        `envconfig:"ROXI_DB_DSN" default:"file:roxi.db?cache=shared"`
	AutoMigrate     bool          `envconfig:"ROXI_DB_AUTO_MIGRATE" default:"false"`
	MaxOpenConns    int           `envconfig:"ROXI_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"ROXI_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"ROXI_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ROXI_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// CatalogConfig points at the rendered storefront page used to build the product index.
type CatalogConfig struct {
	PagePath string `envconfig:"ROXI_CATALOG_PAGE_PATH"`
	// BaseURL resolves relative image sources the way the browser would.
	BaseURL string `envconfig:"ROXI_CATALOG_BASE_URL"`

	// ScanReplace lets POST /catalog/scan swap the served catalog. Off, scans are read-only.
	ScanReplace bool `envconfig:"ROXI_CATALOG_SCAN_REPLACE" default:"false"`
}

type UIConfig struct {
	NotificationDuration time.Duration `envconfig:"ROXI_UI_NOTIFICATION_DURATION" default:"2500ms"`
	CarouselInterval     time.Duration `envconfig:"ROXI_UI_CAROUSEL_INTERVAL" default:"5s"`
}

func (c *Config) validate() error {
	switch c.Cart.NormalizedBackend() {
	case CartBackendMemory:
	case CartBackendRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("%s or %s is required for the redis cart backend", EnvRedisURL, EnvRedisAddr)
		}
	case CartBackendSQL:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required for the sql cart backend", EnvDBDSN)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvCartBackend, c.Cart.Backend)
	}
	if strings.TrimSpace(c.Cart.StorageKey) == "" {
		return fmt.Errorf("%s must not be empty", EnvCartStorageKey)
	}
	return nil
}
