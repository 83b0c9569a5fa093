package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/auth"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/catalog"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/client"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/config"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models"
	records "github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models/console"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/handler"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/metrics"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/middleware"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/service"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/service/console"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logger, logCloser, err := config.NewLogger(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"upstream", cfg.UpstreamBaseURL,
		"preferences_store", cfg.PreferencesStore,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// View catalog
	viewCatalog, err := catalog.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load view catalog: %v", err)
	}
	logger.Info("view catalog loaded", "entities", viewCatalog.Names())

	// Saved views storage
	store, err := openPreferencesStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open preferences store: %v", err)
	}
	defer store.close()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	consoleMetrics := metrics.New(registry)

	// Upstream API
	upstream := client.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, logger)
	resources := console.Resources{
		Users:      client.NewResource[records.User](upstream, "users"),
		Babies:     client.NewResource[records.Baby](upstream, "babies"),
		Doctors:    client.NewResource[records.Doctor](upstream, "doctors"),
		Categories: client.NewResource[records.Category](upstream, "categories"),
		Advices:    client.NewResource[records.Advice](upstream, "advices"),
		Articles:   client.NewResource[records.Article](upstream, "articles"),
		Recipes:    client.NewResource[records.Recipe](upstream, "recipes"),
		Avatars:    client.NewResource[records.Avatar](upstream, "avatars"),
	}
	inspector := auth.NewJWTInspector(logger)

	// Services
	prefsService := service.NewViewPreferencesService(
		store.repo,
		store.txManager,
		viewCatalog,
		func(p *models.ViewPreferences) error { return console.CheckView(viewCatalog, p) },
		logger,
	)
	factory, err := console.NewFactory(console.FactoryConfig{
		Catalog:   viewCatalog,
		Resources: resources,
		Prefs:     prefsService,
		Recorder:  consoleMetrics,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to setup console pages: %v", err)
	}
	workspaces := console.NewWorkspaces(factory, logger)
	consoleMetrics.WatchWorkspaces(workspaces.Len)
	go workspaces.Run(ctx, cfg.WorkspaceSweepEvery, cfg.WorkspaceIdleTimeout)

	// Handlers
	handlers := &handler.Handlers{
		Console: handler.NewConsoleHandler(workspaces, logger),
		Views:   handler.NewViewPreferencesHandler(prefsService, workspaces, logger),
		Session: handler.NewSessionHandler(upstream, inspector, workspaces, logger),
		Catalog: handler.NewCatalogHandler(viewCatalog, workspaces, logger),
	}

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handlers.Register(mux)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestID → Recovery → Auth → Metrics → Routes
	// Metrics wrap the mux directly to read the matched pattern
	h = consoleMetrics.Middleware(h)
	h = middleware.AuthMiddleware(inspector, logger, handler.PublicPaths...)(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestID(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", client.RequestIDHeader},
		ExposedHeaders:   []string{client.RequestIDHeader},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Prometheus scrapes without a session token
	root := http.NewServeMux()
	root.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	root.Handle("/", h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}
