package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/health"
	"github.com/aaravmahajanofficial/storefront/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, cfg *config.Config, endpoints *health.Endpoints) (int, map[string]any) {
	t.Helper()

	h, err := health.NewHealthHandler(cfg, "test", endpoints)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	h.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	return recorder.Code, body
}

func TestHealth(t *testing.T) {
	t.Run("Success - Backend reachable on bolt storage", func(t *testing.T) {
		// Arrange
		client := mocks.NewMockBackendClient(t)
		client.On("Ping", mock.Anything).Return(nil).Once()
		cfg := &config.Config{Storage: config.Storage{Driver: config.StorageDriverBolt}}

		// Act
		code, body := serve(t, cfg, &health.Endpoints{Backend: client})

		// Assert
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "OK", body["status"])
	})

	t.Run("Success - Redis checked when it is the store", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := mocks.NewMockBackendClient(t)
		client.On("Ping", mock.Anything).Return(nil).Once()
		cfg := &config.Config{
			Storage:      config.Storage{Driver: config.StorageDriverRedis},
			RedisConnect: config.RedisConnect{Host: mr.Addr()},
		}

		code, body := serve(t, cfg, &health.Endpoints{Backend: client})

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "OK", body["status"])
	})

	t.Run("Failure - Backend down", func(t *testing.T) {
		client := mocks.NewMockBackendClient(t)
		client.On("Ping", mock.Anything).Return(errors.New("connection refused")).Once()
		cfg := &config.Config{Storage: config.Storage{Driver: config.StorageDriverBolt}}

		code, body := serve(t, cfg, &health.Endpoints{Backend: client})

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "Unavailable", body["status"])
	})

	t.Run("Success - Store failure only degrades", func(t *testing.T) {
		client := mocks.NewMockBackendClient(t)
		client.On("Ping", mock.Anything).Return(nil).Once()
		cfg := &config.Config{Storage: config.Storage{Driver: config.StorageDriverBolt}}

		code, body := serve(t, cfg, &health.Endpoints{
			Backend: client,
			Store:   func(context.Context) error { return errors.New("locked") },
		})

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Partially Available", body["status"])
	})
}
