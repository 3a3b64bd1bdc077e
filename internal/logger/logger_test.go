package logger

import (
	"context"
	"testing"

	"github.com/deppfellow/flatchores/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestGetPgxTraceLogLevel(t *testing.T) {
	assert.Equal(t, 5, GetPgxTraceLogLevel(zerolog.DebugLevel))
	assert.Equal(t, 4, GetPgxTraceLogLevel(zerolog.InfoLevel))
	assert.Equal(t, 2, GetPgxTraceLogLevel(zerolog.ErrorLevel))
	assert.Equal(t, 0, GetPgxTraceLogLevel(zerolog.Disabled))
}

func TestNewLoggerWithServiceDisabledAgent(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	service := NewLoggerService(cfg)
	assert.Nil(t, service.GetApplication())

	l := NewLoggerWithService(cfg, service)
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())

	var nilService *LoggerService
	assert.Nil(t, nilService.GetApplication())
	nilService.Shutdown()
}

func TestFromContext(t *testing.T) {
	fallback := zerolog.Nop()
	scoped := zerolog.Nop().With().Str("request_id", "r1").Logger()

	assert.Same(t, &fallback, FromContext(context.Background(), &fallback))

	ctx := WithContext(context.Background(), &scoped)
	assert.Same(t, &scoped, FromContext(ctx, &fallback))
}
