package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIDExistsError(t *testing.T) {
	err := NewIDExistsError("typeOfChore")

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "idexists", err.Key())
	assert.Equal(t, "A new typeOfChore cannot already have an ID", err.Message)
}

func TestHTTPErrorIs(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewNotFoundError("Flat not found", true, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))
	assert.Equal(t, "not_found", NewNotFoundError("", false, nil).Key())
}

func TestWithMessageCopies(t *testing.T) {
	base := NewInternalServerError()
	custom := base.WithMessage("database unavailable")

	assert.Equal(t, "Internal Server Error", base.Message)
	assert.Equal(t, "database unavailable", custom.Message)
	assert.Equal(t, base.Status, custom.Status)
}
