package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/health"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"_id":"A","name":"Tee","gender":"Mens","category":"Topwear","brand":"Nike","price":1999,"imageUrl":"/a.jpg"}]`)
	})
	mux.HandleFunc("GET /api/products/A", func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = io.WriteString(w, `{"_id":"A","name":"Tee","gender":"Mens","category":"Topwear","brand":"Nike","price":1999,"imageUrl":"/a.jpg"}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func newTestApp(t *testing.T) *app {
	t.Helper()

	mr := miniredis.RunT(t)

	cfg := &config.Config{
		Backend:      config.Backend{BaseURL: fakeBackend(t).URL, Timeout: 2 * time.Second},
		Storage:      config.Storage{Driver: config.StorageDriverRedis, Namespace: "device-1"},
		RedisConnect: config.RedisConnect{Host: mr.Addr()},
		Checkout:     config.Checkout{ConfirmationDelay: 3 * time.Second},
	}

	a, err := newApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	return a
}

func newTestServer(t *testing.T, a *app) http.Handler {
	t.Helper()

	h, err := health.NewHealthHandler(a.cfg, version, &health.Endpoints{Backend: a.backend, Store: a.storeCheck})
	require.NoError(t, err)

	return newHandler(newRouter(a, h.Handler()))
}

func TestServeRoutes(t *testing.T) {
	a := newTestApp(t)
	server := newTestServer(t, a)

	t.Run("Success - Add to cart through the full chain", func(t *testing.T) {
		// Arrange
		body := bytes.NewBufferString(`{"productId":"A","size":"M"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", body)
		recorder := httptest.NewRecorder()

		// Act
		server.ServeHTTP(recorder, req)

		// Assert
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
		assert.Len(t, a.state.Cart(), 1)

		var got struct {
			Data struct {
				Notice string `json:"notice"`
				Cart   struct {
					Total string `json:"total"`
				} `json:"cart"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
		assert.Equal(t, "Product added to cart!", got.Data.Notice)
		assert.Equal(t, "1999.00", got.Data.Cart.Total)
	})

	t.Run("Failure - Profile requires a session", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, appErrors.SignInPath, recorder.Header().Get("Location"))
	})

	t.Run("Success - Browse a segment", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/products?segment=Mens&price=under-5000", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"groups"`)
	})

	t.Run("Success - Health", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Success - Metrics carry route patterns", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `path="POST /api/v1/cart/items"`)
		assert.Contains(t, recorder.Body.String(), `storefront_backend_requests_total{code="200",endpoint=`)
	})
}

func TestRender(t *testing.T) {
	t.Run("Success - Data envelope", func(t *testing.T) {
		var out bytes.Buffer

		require.NoError(t, render(&out, map[string]int{"itemCount": 2}, nil))

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("Failure - App error keeps code and redirect", func(t *testing.T) {
		var out bytes.Buffer

		err := render(&out, nil, appErrors.SessionRequiredError("Your session has expired. Please log in again."))

		require.Error(t, err)
		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
		assert.Equal(t, appErrors.ErrCodeSessionRequired, resp.Error.Code)
		assert.Equal(t, "/signin", resp.Error.Redirect)
	})

	t.Run("Failure - Plain error is internal", func(t *testing.T) {
		var out bytes.Buffer

		_ = render(&out, nil, errors.New("boom"))

		assert.True(t, strings.Contains(out.String(), appErrors.ErrCodeInternal))
	})
}

func TestRootCommand(t *testing.T) {
	ctx := context.Background()

	restore := slog.Default()
	t.Cleanup(func() { slog.SetDefault(restore) })

	t.Run("Success - Help works without a config", func(t *testing.T) {
		// Arrange
		t.Setenv("CONFIG_PATH", "")
		rootCmd, cleanup := newRootCommand()
		defer cleanup()

		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"help"})

		// Act
		err := rootCmd.ExecuteContext(ctx)

		// Assert
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("Failure - Missing config is returned, not fatal", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "")
		rootCmd, cleanup := newRootCommand()
		defer cleanup()

		var stderr bytes.Buffer
		rootCmd.SetErr(&stderr)
		rootCmd.SetArgs([]string{"order", "order-1"})

		err := rootCmd.ExecuteContext(ctx)

		assert.ErrorIs(t, err, config.ErrConfigPathNotSet)
		assert.Contains(t, stderr.String(), "config path is not set")
	})

	t.Run("Success - Command output is a single JSON document", func(t *testing.T) {
		// Arrange
		mr := miniredis.RunT(t)
		configPath := filepath.Join(t.TempDir(), "storefront.yaml")
		yaml := fmt.Sprintf("backend:\n  base_url: %q\nstorage:\n  driver: \"redis\"\nredis:\n  REDIS_HOST: %q\nlog:\n  level: \"debug\"\n", fakeBackend(t).URL, mr.Addr())
		require.NoError(t, os.WriteFile(configPath, []byte(yaml), 0o600))

		rootCmd, cleanup := newRootCommand()
		defer cleanup()

		var stdout, stderr bytes.Buffer
		rootCmd.SetOut(&stdout)
		rootCmd.SetErr(&stderr)
		rootCmd.SetArgs([]string{"--config", configPath, "cart", "add", "A", "--size", "M"})

		// Act
		err := rootCmd.ExecuteContext(ctx)

		// Assert
		require.NoError(t, err)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotContains(t, stdout.String(), `"level"`)
	})
}

func TestLogOutput(t *testing.T) {
	var stderr bytes.Buffer
	cartCmd := &cobra.Command{Use: "cart"}
	cartCmd.SetErr(&stderr)

	assert.Equal(t, &stderr, logOutput(cartCmd))
	assert.Equal(t, os.Stdout, logOutput(&cobra.Command{Use: "serve"}))
}
