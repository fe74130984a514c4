// Package config handles application configuration via environment variables.
// It uses kelseyhightower/envconfig for parsing and provides sensible defaults.
// An optional settings file in dotenv format is loaded first with joho/godotenv;
// variables already present in the environment take precedence over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix, e.g. APP_PORT=8080.
const Prefix = "APP"

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
// It is loaded once at startup and treated as immutable afterwards.
type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Pagination PaginationConfig
	Log        LogConfig
	HTTP       HTTPConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Port is the HTTP server port (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// Host is the HTTP server host (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// ReadTimeout is the maximum duration for reading the entire request (default: 10s)
	ReadTimeout time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`

	// WriteTimeout is the maximum duration before timing out writes of the response (default: 30s)
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`

	// ShutdownTimeout is the maximum duration to wait for active connections to finish (default: 30s)
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	// Driver is "memory" or "postgres" (default: memory)
	Driver string `envconfig:"STORAGE_DRIVER" default:"memory"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	// URL is a full connection string; when set it wins over the discrete fields.
	URL string `envconfig:"DATABASE_URL"`

	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"resourcehub"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// MaxOpenConns is the maximum number of open connections (default: 25)
	MaxOpenConns int `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`

	// MaxIdleConns is the minimum number of connections kept open (default: 5)
	MaxIdleConns int `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`

	// ConnMaxLifetime is the maximum lifetime of a connection (default: 5m)
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
}

// RedisConfig configures the read-through cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"REDIS_TTL" default:"5m"`
}

// Enabled reports whether a cache server is configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// PaginationConfig holds list defaults.
type PaginationConfig struct {
	// DefaultPageSize applies when a request omits pageSize (default: 10)
	DefaultPageSize int `envconfig:"DEFAULT_PAGE_SIZE" default:"10"`

	// MaxPageSize caps the requested pageSize (default: 100)
	MaxPageSize int `envconfig:"MAX_PAGE_SIZE" default:"100"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is the log level: debug, info, warn, error (default: info)
	Level string `envconfig:"LOG_LEVEL" default:"info"`

	// Format is the log format: json, text, plain (default: json)
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// HTTPConfig holds transport middleware settings.
type HTTPConfig struct {
	// CORSOrigins is a comma separated list of allowed origins (default: *)
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	// RateLimitRPS is the sustained request rate per client IP; 0 disables limiting.
	RateLimitRPS float64 `envconfig:"RATE_LIMIT_RPS" default:"0"`

	// RateLimitBurst is the burst size allowed above RateLimitRPS (default: 20)
	RateLimitBurst int `envconfig:"RATE_LIMIT_BURST" default:"20"`
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// Addr returns the server address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads the optional settings file named by APP_ENV_FILE (default ".env")
// and then configuration from environment variables.
func Load() (*Config, error) {
	envFile := os.Getenv(Prefix + "_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load settings file %s: %w", envFile, err)
	}
	return FromEnv()
}

// FromEnv reads configuration from environment variables only.
func FromEnv() (*Config, error) {
	var cfg Config

	// Each section is processed separately to flatten env var names:
	// APP_PORT instead of APP_SERVER_PORT.
	sections := []struct {
		name   string
		target any
	}{
		{"server", &cfg.Server},
		{"storage", &cfg.Storage},
		{"database", &cfg.Database},
		{"redis", &cfg.Redis},
		{"pagination", &cfg.Pagination},
		{"log", &cfg.Log},
		{"http", &cfg.HTTP},
	}
	for _, s := range sections {
		if err := envconfig.Process(Prefix, s.target); err != nil {
			return nil, fmt.Errorf("failed to load %s config: %w", s.name, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints that envconfig cannot express.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Driver) {
	case DriverMemory, DriverPostgres:
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if c.Pagination.DefaultPageSize < 1 {
		return fmt.Errorf("default page size must be >= 1, got %d", c.Pagination.DefaultPageSize)
	}
	if c.Pagination.MaxPageSize < c.Pagination.DefaultPageSize {
		return fmt.Errorf("max page size %d is below default page size %d",
			c.Pagination.MaxPageSize, c.Pagination.DefaultPageSize)
	}
	if c.HTTP.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	return nil
}
