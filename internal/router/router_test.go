package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/flatchores/internal/handler"
	"github.com/deppfellow/flatchores/internal/testutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemRoutes(t *testing.T) {
	r := testutil.NewRouter(t, testutil.MemoryConfig())

	t.Run("status", func(t *testing.T) {
		rec := testutil.Do(r, http.MethodGet, "/status", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "memory", body["store"])
	})

	t.Run("docs", func(t *testing.T) {
		rec := testutil.Do(r, http.MethodGet, "/docs", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
	})

	t.Run("openapi document", func(t *testing.T) {
		rec := testutil.Do(r, http.MethodGet, "/static/openapi.json", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, json.Valid(rec.Body.Bytes()))
	})

	t.Run("metrics", func(t *testing.T) {
		testutil.Do(r, http.MethodGet, "/api/flats", "")

		rec := testutil.Do(r, http.MethodGet, "/metrics", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "flatchores_requests_total")
	})
}

func TestStatusCountsRecords(t *testing.T) {
	r := testutil.NewRouter(t, testutil.MemoryConfig())

	require.Equal(t, http.StatusCreated, testutil.Do(r, http.MethodPost, "/api/flats", `{"name":"A"}`).Code)
	require.Equal(t, http.StatusCreated, testutil.Do(r, http.MethodPost, "/api/flats", `{"name":"B"}`).Code)
	require.Equal(t, http.StatusCreated, testutil.Do(r, http.MethodPost, "/api/badges", `{}`).Code)

	rec := testutil.Do(r, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Checks  map[string]struct{ Status string } `json:"checks"`
		Records map[string]int64                   `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Checks["store"].Status)
	assert.Equal(t, map[string]int64{
		"flat":        2,
		"badge":       1,
		"typeOfBadge": 0,
		"typeOfChore": 0,
		"chore":       0,
	}, body.Records)
}

func TestUnknownRoute(t *testing.T) {
	r := testutil.NewRouter(t, testutil.MemoryConfig())

	rec := testutil.Do(r, http.MethodGet, "/api/nothing-here", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Route not found")
}

func TestRequestID(t *testing.T) {
	r := testutil.NewRouter(t, testutil.MemoryConfig())

	rec := testutil.Do(r, http.MethodGet, "/api/flats", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/flats", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))
}

func TestCORSExposesAlertHeaders(t *testing.T) {
	r := testutil.NewRouter(t, testutil.MemoryConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/flats", strings.NewReader(`{"name":"A"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	exposed := rec.Header().Get(echo.HeaderAccessControlExposeHeaders)
	for _, header := range handler.AlertHeaders {
		assert.Contains(t, exposed, header)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testutil.MemoryConfig()
	cfg.Server.RateLimit = 0.001
	cfg.Server.RateBurst = 2
	r := testutil.NewRouter(t, cfg)

	assert.Equal(t, http.StatusOK, testutil.Do(r, http.MethodGet, "/api/flats", "").Code)
	assert.Equal(t, http.StatusOK, testutil.Do(r, http.MethodGet, "/api/flats", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, testutil.Do(r, http.MethodGet, "/api/flats", "").Code)

	// Probes are never throttled.
	assert.Equal(t, http.StatusOK, testutil.Do(r, http.MethodGet, "/status", "").Code)
}
