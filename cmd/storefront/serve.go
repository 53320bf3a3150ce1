package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/health"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/state"
	"github.com/aaravmahajanofficial/storefront/internal/telemetry"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the storefront views over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), appFrom(cmd))
		},
	}
}

// newRouter registers every view route. Profile routes sit behind the
// session guard.
func newRouter(a *app, healthHandler http.Handler) *http.ServeMux {

	productHandler := handlers.NewProductHandler(a.catalog)
	cartHandler := handlers.NewCartHandler(a.cart, a.catalog)
	wishlistHandler := handlers.NewWishlistHandler(a.wishlist, a.catalog)
	orderHandler := handlers.NewOrderHandler(a.checkout, a.orders)
	userHandler := handlers.NewUserHandler(a.auth)
	sessionGuard := middleware.NewSessionGuard(a.state, nil)

	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/search", productHandler.Search())
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/cart/items/{id}", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem())
	routerMux.HandleFunc("GET /api/v1/wishlist", wishlistHandler.GetWishlist())
	routerMux.HandleFunc("POST /api/v1/wishlist/{id}/toggle", wishlistHandler.Toggle())
	routerMux.HandleFunc("DELETE /api/v1/wishlist/{id}", wishlistHandler.Remove())
	routerMux.HandleFunc("POST /api/v1/wishlist/{id}/move-to-cart", wishlistHandler.MoveToCart())
	routerMux.HandleFunc("POST /api/v1/checkout", orderHandler.Checkout())
	routerMux.HandleFunc("GET /api/v1/orders/{id}", orderHandler.GetOrder())
	routerMux.HandleFunc("POST /api/v1/auth/login", userHandler.Login())
	routerMux.HandleFunc("POST /api/v1/auth/logout", userHandler.Logout())
	routerMux.HandleFunc("POST /api/v1/auth/otp/send", userHandler.SendOTP())
	routerMux.HandleFunc("POST /api/v1/auth/otp/verify", userHandler.VerifyOTP())
	routerMux.HandleFunc("GET /api/v1/profile", sessionGuard.Require(userHandler.Profile()))
	routerMux.HandleFunc("PUT /api/v1/profile", sessionGuard.Require(userHandler.UpdateProfile()))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler)

	return routerMux
}

// newHandler chains the middleware. Metrics sit innermost so the matched
// route pattern is visible to them.
func newHandler(mux *http.ServeMux) http.Handler {

	var handler http.Handler = mux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "storefront")

	return handler
}

func serve(ctx context.Context, a *app) error {

	shutdownTracing, err := telemetry.Init(ctx, a.cfg.Telemetry, version)
	if err != nil {
		slog.Error("❌ Failed to initialize tracing", slog.String("error", err.Error()))
		return err
	}

	healthHandler, err := health.NewHealthHandler(a.cfg, version, &health.Endpoints{
		Backend: a.backend,
		Store:   a.storeCheck,
	})
	if err != nil {
		slog.Error("❌ Failed to initialize health checks", slog.String("error", err.Error()))
		return err
	}

	unsubscribe := a.state.Subscribe(func(s state.Snapshot) {
		slog.Debug("State changed", slog.Int("cartLines", len(s.Cart)), slog.Int("wishlist", len(s.Wishlist)))
	})
	defer unsubscribe()

	server := http.Server{
		Addr:    a.cfg.Addr,
		Handler: newHandler(newRouter(a, healthHandler.Handler())),
	}

	slog.Info("🚀 Server is starting...", slog.String("address", a.cfg.Addr), slog.String("env", a.cfg.Env))

	serverErr := make(chan error, 1)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")
	case err := <-serverErr:
		return err
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Warn("Tracing shutdown failed", slog.String("error", err.Error()))
	}

	return nil
}
