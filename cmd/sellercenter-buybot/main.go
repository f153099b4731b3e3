package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/a1k2f3/sellercenter-buybot/internal/api/handlers"
	"github.com/a1k2f3/sellercenter-buybot/internal/api/middleware"
	"github.com/a1k2f3/sellercenter-buybot/internal/config"
	"github.com/a1k2f3/sellercenter-buybot/internal/draft"
	"github.com/a1k2f3/sellercenter-buybot/internal/health"
	"github.com/a1k2f3/sellercenter-buybot/internal/metrics"
	"github.com/a1k2f3/sellercenter-buybot/internal/session"
	service "github.com/a1k2f3/sellercenter-buybot/internal/services"
	"github.com/a1k2f3/sellercenter-buybot/internal/tracing"
	"github.com/a1k2f3/sellercenter-buybot/pkg/storeapi"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := tracing.Setup(context.Background(), &cfg.Tracing)
	if err != nil {
		slog.Error("❌ Error configuring tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := session.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	jwtKey := []byte(cfg.Security.JWTKey)

	apiClient := storeapi.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	sessionStore := session.NewRedisStore(redisClient, cfg.Security.SessionTTL)
	rateLimiter := session.NewRateLimiter(redisClient, &cfg.RateConfig)
	registry := draft.NewRegistry(cfg.Draft.TTL)
	limits := draft.Limits{
		MaxImages:    cfg.Draft.MaxImages,
		MaxVideos:    cfg.Draft.MaxVideos,
		MaxMediaSize: cfg.Draft.MaxMediaSize,
	}

	sessionService := service.NewSessionService(apiClient, sessionStore, rateLimiter, jwtKey, cfg.Security.SessionTTL)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	catalogService := service.NewCatalogService(apiClient)
	productHandler := handlers.NewProductHandler(catalogService)
	orderService := service.NewOrderService(apiClient)
	orderHandler := handlers.NewOrderHandler(orderService)
	dashboardService := service.NewDashboardService(apiClient)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	draftService := service.NewDraftService(apiClient, registry, limits)
	draftHandler := handlers.NewDraftHandler(draftService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey, sessionStore)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error configuring health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("gateway initialized", slog.String("env", cfg.Env), slog.String("backend", cfg.Backend.BaseURL))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/session/login", sessionHandler.Login())
	routerMux.HandleFunc("POST /api/v1/session/logout", authMiddleware.Authenticate(sessionHandler.Logout()))
	routerMux.HandleFunc("GET /api/v1/navigation", authMiddleware.Authenticate(dashboardHandler.Navigation()))
	routerMux.HandleFunc("GET /api/v1/dashboard/summary", authMiddleware.Authenticate(dashboardHandler.Summary()))
	routerMux.HandleFunc("GET /api/v1/dashboard/settings", authMiddleware.Authenticate(dashboardHandler.Settings()))
	routerMux.HandleFunc("GET /api/v1/dashboard/marketing", authMiddleware.Authenticate(dashboardHandler.Marketing()))
	routerMux.HandleFunc("GET /api/v1/dashboard/customers", authMiddleware.Authenticate(dashboardHandler.Customers()))
	routerMux.HandleFunc("GET /api/v1/dashboard/reports", authMiddleware.Authenticate(dashboardHandler.Reports()))
	routerMux.HandleFunc("GET /api/v1/products", authMiddleware.Authenticate(productHandler.ListProducts()))
	routerMux.HandleFunc("GET /api/v1/products/{id}", authMiddleware.Authenticate(productHandler.GetProduct()))
	routerMux.HandleFunc("DELETE /api/v1/products/{id}", authMiddleware.Authenticate(productHandler.DeleteProduct()))
	routerMux.HandleFunc("GET /api/v1/reference/categories", authMiddleware.Authenticate(productHandler.ListCategories()))
	routerMux.HandleFunc("GET /api/v1/reference/tags", authMiddleware.Authenticate(productHandler.ListTags()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("POST /api/v1/drafts", authMiddleware.Authenticate(draftHandler.Open()))
	routerMux.HandleFunc("GET /api/v1/drafts/{id}", authMiddleware.Authenticate(draftHandler.Get()))
	routerMux.HandleFunc("DELETE /api/v1/drafts/{id}", authMiddleware.Authenticate(draftHandler.Discard()))
	routerMux.HandleFunc("PUT /api/v1/drafts/{id}/fields", authMiddleware.Authenticate(draftHandler.SetFields()))
	routerMux.HandleFunc("POST /api/v1/drafts/{id}/tags/{tagId}", authMiddleware.Authenticate(draftHandler.ToggleTag()))
	routerMux.HandleFunc("POST /api/v1/drafts/{id}/sizes/{size}", authMiddleware.Authenticate(draftHandler.ToggleSize()))
	routerMux.HandleFunc("POST /api/v1/drafts/{id}/specs", authMiddleware.Authenticate(draftHandler.AppendSpecRow()))
	routerMux.HandleFunc("PUT /api/v1/drafts/{id}/specs/{index}", authMiddleware.Authenticate(draftHandler.SetSpecRow()))
	routerMux.HandleFunc("DELETE /api/v1/drafts/{id}/specs/{index}", authMiddleware.Authenticate(draftHandler.RemoveSpecRow()))
	routerMux.HandleFunc("POST /api/v1/drafts/{id}/submit", authMiddleware.Authenticate(draftHandler.Submit()))
	routerMux.HandleFunc("POST /api/v1/drafts/{id}/media", authMiddleware.Authenticate(draftHandler.StageMedia()))
	routerMux.HandleFunc("GET /api/v1/drafts/{id}/media/{mediaId}", authMiddleware.Authenticate(draftHandler.Media()))
	routerMux.HandleFunc("DELETE /api/v1/drafts/{id}/media/{mediaId}", authMiddleware.Authenticate(draftHandler.Unstage()))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracing shutdown encountered an issue", slog.String("error", err.Error()))
	}
}
