package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *appErrors.AppError
		code       string
		statusCode int
	}{
		{"Validation", appErrors.ValidationError("bad"), appErrors.ErrCodeValidation, http.StatusBadRequest},
		{"NotFound", appErrors.NotFoundError("missing"), appErrors.ErrCodeNotFound, http.StatusNotFound},
		{"SessionRequired", appErrors.SessionRequiredError("login"), appErrors.ErrCodeSessionRequired, http.StatusUnauthorized},
		{"Conflict", appErrors.ConflictError("busy"), appErrors.ErrCodeConflict, http.StatusConflict},
		{"Storage", appErrors.StorageError("disk"), appErrors.ErrCodeStorage, http.StatusInternalServerError},
		{"Backend", appErrors.BackendError("down"), appErrors.ErrCodeBackend, http.StatusBadGateway},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, tc.err.Code)
			assert.Equal(t, tc.statusCode, tc.err.StatusCode)
		})
	}
}

func TestSessionRequiredRedirectsToSignIn(t *testing.T) {
	err := appErrors.SessionRequiredError("Your session has expired. Please log in again.")

	assert.Equal(t, appErrors.SignInPath, err.Redirect)
	assert.Equal(t, "Your session has expired. Please log in again.", err.Error())
}

func TestIsAppError(t *testing.T) {
	t.Run("Success - Wrapped AppError", func(t *testing.T) {
		// Arrange
		cause := errors.New("connection refused")
		err := fmt.Errorf("checkout: %w", appErrors.BackendError("Something went wrong").WithError(cause))

		// Act
		appErr, ok := appErrors.IsAppError(err)

		// Assert
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBackend, appErr.Code)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Failure - Plain error", func(t *testing.T) {
		appErr, ok := appErrors.IsAppError(errors.New("plain"))

		assert.False(t, ok)
		assert.Nil(t, appErr)
	})
}

func TestWithDetail(t *testing.T) {
	err := appErrors.ValidationError("All fields are required.").WithDetail("city")

	assert.Equal(t, "city", err.Detail)
	assert.Equal(t, "Invalid field 'size': unknown", appErrors.AddValidationError("size", "unknown").Message)
}
