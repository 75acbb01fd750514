package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, NewValidationError("bad", nil).StatusCode())
	assert.Equal(t, http.StatusNotFound, NewNotFoundError("gone", nil).StatusCode())
	assert.Equal(t, http.StatusUnprocessableEntity, NewUnprocessableError("unreadable", nil).StatusCode())
	assert.Equal(t, http.StatusTooManyRequests, NewTooManyRequestsError("slow down").StatusCode())
	assert.Equal(t, http.StatusInternalServerError, NewInternalError("boom", nil).StatusCode())
}

func TestInternalErrorHidesDetails(t *testing.T) {
	cause := errors.New("sheet index out of range")
	err := NewInternalError("workbook parse failed", cause)

	assert.Equal(t, "internal server error", err.Message)
	// The cause stays reachable for logging.
	assert.True(t, errors.Is(err, cause))
}

func TestAsAppErrorThroughWrapping(t *testing.T) {
	inner := NewNotFoundError("session not found", nil)
	wrapped := fmt.Errorf("handling request: %w", inner)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode())

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrorStringIncludesCause(t *testing.T) {
	err := NewValidationError("bad input", errors.New("field missing"))
	assert.Equal(t, "bad input: field missing", err.Error())
	assert.Equal(t, "bad input", NewValidationError("bad input", nil).Error())
}
