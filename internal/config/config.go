package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/unifit/bundle-service/pkg/config"
)

// Config holds all configuration for the bundle service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"BUNDLE_HTTP_PORT" envDefault:"8020"`

	// PostgreSQL (persisted bundle documents)
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"unifit"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"unifit_secret"`
	PostgresDB   string `env:"BUNDLE_DB_NAME" envDefault:"bundle_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Redis (session configurations)
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int           `env:"BUNDLE_REDIS_DB" envDefault:"0"`
	SessionTTL    time.Duration `env:"BUNDLE_SESSION_TTL" envDefault:"72h"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Storefront catalog API
	CatalogBaseURL string        `env:"CATALOG_BASE_URL" envDefault:"http://localhost:8002"`
	CatalogTimeout time.Duration `env:"CATALOG_TIMEOUT" envDefault:"10s"`

	// Pricing policy
	LogoUnitPrice float64 `env:"LOGO_UNIT_PRICE" envDefault:"5.95"`
	VATRate       float64 `env:"VAT_RATE" envDefault:"0.20"`

	// Logo artwork uploads
	LogoBaseURL     string `env:"LOGO_BASE_URL" envDefault:""`
	MaxLogoSizeByte int64  `env:"MAX_LOGO_SIZE_BYTES" envDefault:"10485760"`

	// Tracing
	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint string  `env:"TRACING_ENDPOINT" envDefault:"localhost:4318"`
	TracingSample   float64 `env:"TRACING_SAMPLE_RATIO" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load bundle config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port %d", c.HTTPPort)
	}
	if c.VATRate < 0 || c.VATRate >= 1 {
		return fmt.Errorf("VAT_RATE must be in [0.0, 1.0), got %g", c.VATRate)
	}
	if c.LogoUnitPrice < 0 {
		return fmt.Errorf("LOGO_UNIT_PRICE must not be negative, got %g", c.LogoUnitPrice)
	}
	if c.TracingSample < 0 || c.TracingSample > 1 {
		return fmt.Errorf("TRACING_SAMPLE_RATIO must be between 0.0 and 1.0, got %g", c.TracingSample)
	}
	return nil
}

// PostgresDSN returns the PostgreSQL connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.PostgresUser, c.PostgresPass, c.PostgresHost, c.PostgresPort, c.PostgresDB, c.PostgresSSL,
	)
}
