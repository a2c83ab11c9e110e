package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Payment  PaymentConfig  `yaml:"payment"`
	Docstore DocstoreConfig `yaml:"docstore"`
	Notify   NotifyConfig   `yaml:"notify"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds JWT settings. Identity is issued by an external provider;
// this service only verifies and introspects tokens.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"visago"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// PaymentConfig holds external payment processor settings.
type PaymentConfig struct {
	BaseURL         string        `yaml:"base_url"          env:"PAYMENT_BASE_URL"`
	APIKey          string        `yaml:"api_key"           env:"PAYMENT_API_KEY"`
	RequestTimeout  time.Duration `yaml:"request_timeout"   env:"PAYMENT_REQUEST_TIMEOUT"  env-default:"10s"`
	ApplicationFee  int64         `yaml:"application_fee"   env:"PAYMENT_APPLICATION_FEE"  env-default:"4900"`
	PerTravelerFee  int64         `yaml:"per_traveler_fee"  env:"PAYMENT_PER_TRAVELER_FEE" env-default:"4900"`
	Currency        string        `yaml:"currency"          env:"PAYMENT_CURRENCY"         env-default:"USD"`
	PollInterval    time.Duration `yaml:"poll_interval"     env:"PAYMENT_POLL_INTERVAL"    env-default:"5s"`
	PollMaxAttempts int           `yaml:"poll_max_attempts" env:"PAYMENT_POLL_MAX_ATTEMPTS" env-default:"30"`
}

// DocstoreConfig holds document storage settings.
type DocstoreConfig struct {
	BaseURL      string        `yaml:"base_url"       env:"DOCSTORE_BASE_URL"`
	SigningKey   string        `yaml:"signing_key"    env:"DOCSTORE_SIGNING_KEY"`
	URLTTL       time.Duration `yaml:"url_ttl"        env:"DOCSTORE_URL_TTL"        env-default:"15m"`
	MaxSizeBytes int64         `yaml:"max_size_bytes" env:"DOCSTORE_MAX_SIZE_BYTES" env-default:"10485760"`
}

// NotifyConfig holds outbound notification settings.
type NotifyConfig struct {
	WebhookURL     string        `yaml:"webhook_url"     env:"NOTIFY_WEBHOOK_URL"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"NOTIFY_REQUEST_TIMEOUT" env-default:"5s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateLimitConfig holds per-IP request throttling settings. The default
// allows for chatty autosave traffic.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_REQUESTS_PER_MINUTE" env-default:"600"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP_INTERVAL"    env-default:"5m"`
}

// Addr returns the host:port the HTTP server binds to.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
