package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/flatchores/internal/config"
	"github.com/deppfellow/flatchores/internal/errs"
	"github.com/deppfellow/flatchores/internal/server"
	"github.com/deppfellow/flatchores/internal/sqlerr"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, errs.HTTPError) {
	t.Helper()
	return renderErrorIn(t, "development", err)
}

func renderErrorIn(t *testing.T, env string, err error) (*httptest.ResponseRecorder, errs.HTTPError) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	s := &server.Server{Config: &config.Config{Primary: config.Primary{Env: env}}}
	NewGlobalMiddlewares(s).GlobalErrorHandler(err, c)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestGlobalErrorHandler(t *testing.T) {
	t.Run("http error is rendered as is", func(t *testing.T) {
		rec, body := renderError(t, errs.NewIDExistsError("flat"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, errs.CodeIDExists, body.Code)
		assert.True(t, body.Override)
	})

	t.Run("echo 404 becomes route not found", func(t *testing.T) {
		rec, body := renderError(t, echo.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Route not found", body.Message)
	})

	t.Run("other echo errors keep their status", func(t *testing.T) {
		rec, body := renderError(t, echo.ErrUnsupportedMediaType)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", body.Code)
	})

	t.Run("store errors go through sqlerr", func(t *testing.T) {
		err := sqlerr.Violation(sqlerr.ForeignKeyViolation, "chore", "flat_id", "fk_chore_flat")
		rec, body := renderError(t, fmt.Errorf("saving chore: %w", err))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "CHORE_NOT_FOUND", body.Code)
	})

	t.Run("missing row names the table", func(t *testing.T) {
		rec, body := renderError(t, fmt.Errorf("table:flat: %w", pgx.ErrNoRows))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Flat not found", body.Message)
	})

	t.Run("unknown errors are hidden", func(t *testing.T) {
		rec, body := renderError(t, errors.New("connection reset by peer"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, http.StatusText(http.StatusInternalServerError), body.Message)
	})
}

func TestGlobalErrorHandler_ProductionHidesMessages(t *testing.T) {
	internal := errs.NewBadRequestError("column flat.name is null", false, nil, nil)

	_, body := renderErrorIn(t, "development", internal)
	assert.Equal(t, "column flat.name is null", body.Message)

	rec, body := renderErrorIn(t, config.EnvProduction, internal)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, http.StatusText(http.StatusBadRequest), body.Message)
	assert.Equal(t, "column flat.name is null", internal.Message, "the original error is left untouched")

	_, body = renderErrorIn(t, config.EnvProduction, errs.NewIDExistsError("flat"))
	assert.Equal(t, "A new flat cannot already have an ID", body.Message)

	_, body = renderErrorIn(t, config.EnvProduction, sqlerr.Violation(sqlerr.ForeignKeyViolation, "chore", "flat_id", "fk_chore_flat"))
	assert.Equal(t, "The referenced Flat does not exist", body.Message)
}

func TestGetLogger_WithoutEnhancer(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	require.NotNil(t, GetLogger(c))
	assert.Empty(t, GetRequestID(c))
}
