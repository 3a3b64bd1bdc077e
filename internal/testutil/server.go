// Package testutil builds fully wired servers for HTTP tests.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/flatchores/internal/config"
	"github.com/deppfellow/flatchores/internal/handler"
	"github.com/deppfellow/flatchores/internal/logger"
	"github.com/deppfellow/flatchores/internal/repository"
	"github.com/deppfellow/flatchores/internal/router"
	"github.com/deppfellow/flatchores/internal/server"
	"github.com/deppfellow/flatchores/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// MemoryConfig is a valid configuration for the memory store driver.
func MemoryConfig() *config.Config {
	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			CORSAllowedOrigins: []string{"*"},
			RateLimit:          1000,
			RateBurst:          1000,
		},
		Store:         config.StoreConfig{Driver: config.StoreDriverMemory},
		Observability: config.DefaultObservabilityConfig(),
	}
}

// NewRouter wires cfg with an empty memory store and returns the router.
func NewRouter(t *testing.T, cfg *config.Config) *echo.Echo {
	t.Helper()

	log := zerolog.Nop()
	srv, err := server.New(cfg, &log, logger.NewLoggerService(cfg.Observability))
	require.NoError(t, err)

	services, err := service.NewServices(srv, repository.NewRepositories(srv))
	require.NoError(t, err)

	return router.NewRouter(srv, handler.NewHandlers(srv, services))
}

// Do sends a request with an optional JSON body through r.
func Do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
