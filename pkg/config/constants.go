package config

const EnvPrefix = "ROXI"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	CartBackendMemory = "memory"
	CartBackendRedis  = "redis"
	CartBackendSQL    = "sql"
)

const (
	EnvAppEnv           = "ROXI_APP_ENV"
	EnvPort             = "ROXI_APP_PORT"
	EnvLogLevel         = "ROXI_LOG_LEVEL"
	EnvCartBackend      = "ROXI_CART_BACKEND"
	EnvCartStorageKey   = "ROXI_CART_STORAGE_KEY"
	EnvCartCookieSecret = "ROXI_CART_COOKIE_SECRET"
	EnvRedisURL         = "ROXI_REDIS_URL"
	EnvRedisAddr        = "ROXI_REDIS_ADDR"
	EnvDBDriver         = "ROXI_DB_DRIVER"
	EnvDBDSN            = "ROXI_DB_DSN"
	EnvCurrencyLocale   = "ROXI_CURRENCY_LOCALE"
	EnvNotificationTTL  = "ROXI_UI_NOTIFICATION_DURATION"
)
