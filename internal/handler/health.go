package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/flatchores/internal/middleware"
	"github.com/deppfellow/flatchores/internal/server"
	"github.com/deppfellow/flatchores/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type HealthHandler struct {
	Handler
	services *service.Services
}

func NewHealthHandler(s *server.Server, services *service.Services) *HealthHandler {
	return &HealthHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Store       string                 `json:"store"`
	Checks      map[string]checkResult `json:"checks"`
	Records     map[string]int64       `json:"records,omitempty"`
}

// CheckHealth probes the configured dependencies and counts the stored
// records of every type. A failing database or store makes the service
// unhealthy (503); a failing Redis only degrades job delivery and is
// reported without changing the status code.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	cfg := h.server.Config

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: cfg.Primary.Env,
		Store:       cfg.Store.Driver,
		Checks:      make(map[string]checkResult),
	}

	timeout := cfg.Observability.HealthChecks.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	if h.server.DB != nil && cfg.Observability.HasCheck("database") {
		result := h.runCheck(c.Request().Context(), &logger, "database", timeout, h.server.DB.Pool.Ping)
		response.Checks["database"] = result
		if result.Status != "healthy" {
			response.Status = "unhealthy"
		}
	}

	if h.server.Redis != nil && cfg.Observability.HasCheck("redis") {
		response.Checks["redis"] = h.runCheck(c.Request().Context(), &logger, "redis", timeout, func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	if response.Status == "healthy" {
		var records map[string]int64
		result := h.runCheck(c.Request().Context(), &logger, "store", timeout, func(ctx context.Context) error {
			var err error
			records, err = h.services.Counts(ctx)
			return err
		})
		response.Checks["store"] = result
		if result.Status != "healthy" {
			response.Status = "unhealthy"
		}
		response.Records = records
	}

	if response.Status != "healthy" {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthError("overall", map[string]any{
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) runCheck(parent context.Context, logger *zerolog.Logger, name string, timeout time.Duration, ping func(context.Context) error) checkResult {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	checkStart := time.Now()
	err := ping(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		logger.Error().
			Err(err).
			Dur("response_time", elapsed).
			Msgf("%s health check failed", name)

		h.recordHealthError(name, map[string]any{
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return checkResult{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
	}

	logger.Debug().
		Dur("response_time", elapsed).
		Msgf("%s health check passed", name)

	return checkResult{Status: "healthy", ResponseTime: elapsed.String()}
}

func (h *HealthHandler) recordHealthError(checkType string, attributes map[string]any) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	attributes["check_type"] = checkType
	attributes["operation"] = "health_check"
	attributes["error_type"] = checkType + "_unhealthy"
	app.RecordCustomEvent("HealthCheckError", attributes)
}
