package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Internal("failed", cause)
	wrapped := fmt.Errorf("outer: %w", err)

	assert.True(t, IsAppError(wrapped))
	assert.Equal(t, ErrCodeInternal, GetAppError(wrapped).Code)
	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, HasCode(wrapped, ErrCodeInternal))
	assert.False(t, HasCode(cause, ErrCodeInternal))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, (&AppError{Code: ErrCodeValidation}).StatusCode())
	assert.Equal(t, http.StatusNotFound, NotFound(ErrCodePropertyNotFound, "x").StatusCode())
	assert.Equal(t, http.StatusConflict, Conflict(ErrCodeConflict, "x").StatusCode())
	assert.Equal(t, "[INSUFFICIENT_SHARES] not enough", NewAppError(ErrCodeInsufficientShares, "not enough", nil).Error())
}
