package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  Jane Doe ", "Jane Doe"},
		{"<script>alert(1)</script>221B Baker St", "221B Baker St"},
		{"<b>Bold</b> & co", "Bold & co"},
		{"O'Brien", "O'Brien"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.input))
		})
	}
}

func TestParseAndValidate(t *testing.T) {
	validate := validator.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/otp/send", strings.NewReader(`{"email":"a@b.co"}`))
		rec := httptest.NewRecorder()

		var dest models.SendOTPRequest

		// Act
		ok := ParseAndValidate(req, rec, &dest, validate)

		// Assert
		assert.True(t, ok)
		assert.Equal(t, "a@b.co", dest.Email)
	})

	t.Run("Failure - Empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		rec := httptest.NewRecorder()

		var dest models.SendOTPRequest

		ok := ParseAndValidate(req, rec, &dest, validate)

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body response.APIResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, appErrors.ErrCodeBadRequest, body.Error.Code)
	})

	t.Run("Failure - Validation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"not-an-email"}`))
		rec := httptest.NewRecorder()

		var dest models.SendOTPRequest

		ok := ParseAndValidate(req, rec, &dest, validate)

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body response.APIResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, appErrors.ErrCodeValidation, body.Error.Code)
		assert.Equal(t, []string{"Field Email must be a valid email address"}, body.Error.Details)
	})
}

func TestErrorResponseRedirect(t *testing.T) {
	rec := httptest.NewRecorder()

	response.Error(rec, appErrors.SessionRequiredError("Your session has expired. Please log in again."))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, appErrors.SignInPath, rec.Header().Get("Location"))

	var body response.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, appErrors.SignInPath, body.Error.Redirect)
}
