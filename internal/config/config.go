// Package config loads the application configuration from the environment.
//
// Variables are read with the FLATCHORES_ prefix (a `.env` file in the
// working directory is loaded first), mapped onto Config and validated, so
// the process refuses to start on missing or malformed settings.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is stripped from every variable name.
	EnvPrefix = "FLATCHORES_"

	// nestingSeparator splits variable names into koanf key paths:
	// FLATCHORES_DATABASE__SSL_MODE -> database.ssl_mode
	nestingSeparator = "__"
)

// EnvProduction is the primary.env value of deployed instances.
const EnvProduction = "production"

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config is the root configuration.
//
// Database and Redis are only required by the postgres store driver; the
// memory driver runs without any external service.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Store         StoreConfig          `koanf:"store"`
	Database      DatabaseConfig       `koanf:"database" validate:"-"`
	Redis         RedisConfig          `koanf:"redis" validate:"-"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
	RateLimit          float64  `koanf:"rate_limit" validate:"gt=0"`
	RateBurst          int      `koanf:"rate_burst" validate:"gt=0"`
}

type StoreConfig struct {
	Driver string `koanf:"driver" validate:"omitempty,oneof=postgres memory"`
}

type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig.Address is "host:port". It backs the job queue.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// IntegrationConfig holds third-party credentials. Both fields are optional:
// without them badge notifications are logged and skipped.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	NotifyEmail  string `koanf:"notify_email" validate:"omitempty,email"`
}

// UsesMemoryStore reports whether records live in process memory.
func (c *Config) UsesMemoryStore() bool {
	return c.Store.Driver == StoreDriverMemory
}

// LoadConfig reads, defaults and validates the configuration.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Defaults are decoded over, so a partially configured block keeps the
	// defaults of the keys it does not set.
	mainConfig := &Config{
		Server: ServerConfig{
			RateLimit: 20,
			RateBurst: 40,
		},
		Store:         StoreConfig{Driver: StoreDriverPostgres},
		Observability: DefaultObservabilityConfig(),
	}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if !mainConfig.UsesMemoryStore() {
		if err := validate.Struct(mainConfig.Database); err != nil {
			return nil, fmt.Errorf("database config validation failed: %w", err)
		}
		if err := validate.Struct(mainConfig.Redis); err != nil {
			return nil, fmt.Errorf("redis config validation failed: %w", err)
		}
	}

	mainConfig.Observability.ServiceName = "flatchores"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, nestingSeparator, ".")
}
