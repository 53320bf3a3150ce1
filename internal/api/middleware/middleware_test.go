package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/state"
	"github.com/aaravmahajanofficial/storefront/internal/storage/redisstore"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func createTestToken(t *testing.T, userID string, exp time.Time) string {
	t.Helper()

	claims := &models.Claims{
		UserID:           userID,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-only-key"))
	require.NoError(t, err)

	return token
}

func newStore(t *testing.T, token string) *state.Store {
	t.Helper()

	mr := miniredis.RunT(t)
	backend := redisstore.New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = backend.Close() })

	st, err := state.Open(context.Background(), backend, "")
	require.NoError(t, err)

	if token != "" {
		require.NoError(t, st.Mutate(context.Background(), func(tx *state.Tx) error {
			tx.SetToken(token)
			return nil
		}))
	}

	return st
}

func TestSessionGuard(t *testing.T) {
	tests := []struct {
		name           string
		token          func(t *testing.T) string
		expectedStatus int
		expectedBody   string
		expectNextCall bool
	}{
		{
			name:           "Success - Valid Token",
			token:          func(t *testing.T) string { return createTestToken(t, "user-1", now.Add(time.Hour)) },
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success": true}`,
			expectNextCall: true,
		},
		{
			name:           "Failure - No Token",
			token:          func(*testing.T) string { return "" },
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "SESSION_REQUIRED", "message": "Please sign in to continue.", "redirect": "/signin"}}`,
		},
		{
			name:           "Failure - Expired Token",
			token:          func(t *testing.T) string { return createTestToken(t, "user-1", now.Add(-time.Second)) },
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success": false, "error": {"code": "SESSION_REQUIRED", "message": "Please sign in to continue.", "redirect": "/signin"}}`,
		},
		{
			name:           "Failure - Malformed Token",
			token:          func(*testing.T) string { return "not.a.token" },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Failure - Token Without User",
			token:          func(t *testing.T) string { return createTestToken(t, "", now.Add(time.Hour)) },
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			guard := middleware.NewSessionGuard(newStore(t, tc.token(t)), func() time.Time { return now })

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				userID, ok := middleware.UserID(r.Context())
				require.True(t, ok)
				assert.Equal(t, "user-1", userID)

				w.WriteHeader(http.StatusOK)
				_, err := w.Write([]byte(`{"success": true}`))
				require.NoError(t, err)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
			rr := httptest.NewRecorder()

			// Act
			guard.Require(next).ServeHTTP(rr, req)

			// Assert
			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, tc.expectNextCall, called)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
			if !tc.expectNextCall {
				assert.Equal(t, "/signin", rr.Header().Get("Location"))
			}
		})
	}
}

func TestLogging(t *testing.T) {
	t.Run("Success - Incoming request id is kept", func(t *testing.T) {
		// Arrange
		var seen string
		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.RequestID(r.Context())
			require.NotNil(t, middleware.LoggerFromContext(r.Context()))
			w.WriteHeader(http.StatusTeapot)
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-123")
		rr := httptest.NewRecorder()

		// Act
		handler.ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", rr.Header().Get(middleware.RequestIDHeader))
		assert.Equal(t, http.StatusTeapot, rr.Code)
	})

	t.Run("Success - Fresh request id is generated", func(t *testing.T) {
		var seen string
		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.RequestID(r.Context())
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rr.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("Success - No request id outside a request", func(t *testing.T) {
		assert.Empty(t, middleware.RequestID(context.Background()))
	})
}
