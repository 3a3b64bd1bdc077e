package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/flatchores/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr
}

func TestHandleError_ForeignKey(t *testing.T) {
	t.Run("dangling reference", func(t *testing.T) {
		err := HandleError(Violation(ForeignKeyViolation, "type_of_badge", "badge_id", "fk_type_of_badge_badge"))
		httpErr := asHTTPError(t, err)

		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "TYPE_OF_BADGE_NOT_FOUND", httpErr.Code)
		assert.Equal(t, "The referenced Badge does not exist", httpErr.Message)
	})

	t.Run("delete of a referenced row", func(t *testing.T) {
		err := HandleError(StillReferenced("flat", "chore", "flat_id", "fk_chore_flat"))
		httpErr := asHTTPError(t, err)

		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "CHORE_REFERENCE", httpErr.Code)
		assert.Equal(t, "The record is still referenced by a Chore", httpErr.Message)
	})
}

func TestHandleError_NotNull(t *testing.T) {
	err := HandleError(fmt.Errorf("insert: %w", Violation(NotNullViolation, "type_of_chore", "repeatable", "")))
	httpErr := asHTTPError(t, err)

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "TYPE_OF_CHORE_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "repeatable", httpErr.Errors[0].Field)
}

func TestHandleError_PgError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        `duplicate key value violates unique constraint "flat_name_key"`,
		TableName:      "flat",
		ConstraintName: "flat_name_key",
	}

	httpErr := asHTTPError(t, HandleError(fmt.Errorf("save: %w", pgErr)))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "FLAT_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Flat with this Name already exists", httpErr.Message)

	assert.Equal(t, UniqueViolation, ErrCode(pgErr))
}

func TestHandleError_NotFound(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(fmt.Errorf("table:type_of_chore: %w", pgx.ErrNoRows)))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Type Of Chore not found", httpErr.Message)

	httpErr = asHTTPError(t, HandleError(pgx.ErrNoRows))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleError_Passthrough(t *testing.T) {
	original := errs.NewIDExistsError("flat")
	assert.Same(t, original, HandleError(original))

	httpErr := asHTTPError(t, HandleError(errors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, Other, ErrCode(errors.New("boom")))
}
