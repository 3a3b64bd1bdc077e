package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FLATCHORES_PRIMARY__ENV", "local")
	t.Setenv("FLATCHORES_SERVER__PORT", "8080")
	t.Setenv("FLATCHORES_SERVER__READ_TIMEOUT", "30")
	t.Setenv("FLATCHORES_SERVER__WRITE_TIMEOUT", "30")
	t.Setenv("FLATCHORES_SERVER__IDLE_TIMEOUT", "60")
	t.Setenv("FLATCHORES_SERVER__CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:9000")
}

func setDatabaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FLATCHORES_DATABASE__HOST", "localhost")
	t.Setenv("FLATCHORES_DATABASE__PORT", "5432")
	t.Setenv("FLATCHORES_DATABASE__USER", "flatchores")
	t.Setenv("FLATCHORES_DATABASE__PASSWORD", "p@ss:word")
	t.Setenv("FLATCHORES_DATABASE__NAME", "flatchores")
	t.Setenv("FLATCHORES_DATABASE__SSL_MODE", "disable")
	t.Setenv("FLATCHORES_DATABASE__MAX_OPEN_CONNS", "10")
	t.Setenv("FLATCHORES_DATABASE__MAX_IDLE_CONNS", "5")
	t.Setenv("FLATCHORES_DATABASE__CONN_MAX_LIFETIME", "300")
	t.Setenv("FLATCHORES_DATABASE__CONN_MAX_IDLE_TIME", "60")
	t.Setenv("FLATCHORES_REDIS__ADDRESS", "localhost:6379")
}

func TestLoadConfig_MemoryStore(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("FLATCHORES_STORE__DRIVER", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.UsesMemoryStore())
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 60, cfg.Server.IdleTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:9000"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 20.0, cfg.Server.RateLimit)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, "flatchores", cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
}

func TestLoadConfig_PostgresRequiresDatabase(t *testing.T) {
	setBaseEnv(t)

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database config validation failed")

	setDatabaseEnv(t)
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "p@ss:word", cfg.Database.Password)
}

func TestLoadConfig_PartialObservabilityKeepsDefaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("FLATCHORES_STORE__DRIVER", "memory")
	t.Setenv("FLATCHORES_OBSERVABILITY__LOGGING__LEVEL", "debug")
	t.Setenv("FLATCHORES_OBSERVABILITY__LOGGING__SLOW_QUERY_THRESHOLD", "250ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.Equal(t, 250*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.True(t, cfg.Observability.HasCheck("database"))
}

func TestLoadConfig_Rejects(t *testing.T) {
	t.Run("unknown store driver", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("FLATCHORES_STORE__DRIVER", "sqlite")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("unknown log level", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("FLATCHORES_STORE__DRIVER", "memory")
		t.Setenv("FLATCHORES_OBSERVABILITY__LOGGING__LEVEL", "verbose")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid logging level")
	})

	t.Run("zero rate limit", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("FLATCHORES_STORE__DRIVER", "memory")
		t.Setenv("FLATCHORES_SERVER__RATE_LIMIT", "0")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RateLimit")
	})

	t.Run("zero rate burst", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("FLATCHORES_STORE__DRIVER", "memory")
		t.Setenv("FLATCHORES_SERVER__RATE_BURST", "0")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RateBurst")
	})

	t.Run("missing server block", func(t *testing.T) {
		t.Setenv("FLATCHORES_PRIMARY__ENV", "local")
		t.Setenv("FLATCHORES_STORE__DRIVER", "memory")

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}

func TestGetLogLevel(t *testing.T) {
	c := DefaultObservabilityConfig()
	c.Logging.Level = ""

	c.Environment = "production"
	assert.Equal(t, "info", c.GetLogLevel())

	c.Environment = "local"
	assert.Equal(t, "debug", c.GetLogLevel())
	assert.False(t, c.IsProduction())
}
