package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidationErrorJoinsMessages(t *testing.T) {
	err := NewValidationError([]FieldError{
		{Field: "name", Message: "name is required"},
		{Field: "items", Message: "items must not be empty"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, "name is required, items must not be empty", err.Message)
	assert.Len(t, err.Errors, 2)
}

func TestGetAppErrorHidesUnknownErrors(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:5432: connection refused")

	appErr := GetAppError(fmt.Errorf("list products: %w", cause))

	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, KindUpstreamFailure, appErr.Kind)
	assert.NotContains(t, appErr.Message, "5432")
	require.ErrorIs(t, appErr, cause)
}

func TestIsKind(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewNotFoundError("Product"))

	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindConflict))
	assert.False(t, IsKind(errors.New("plain"), KindNotFound))
}
