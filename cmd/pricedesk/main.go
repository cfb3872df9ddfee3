package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	pdhttp "github.com/wiraa/pricedesk/internal/adapter/http"
	pdnats "github.com/wiraa/pricedesk/internal/adapter/nats"
	pdotel "github.com/wiraa/pricedesk/internal/adapter/otel"
	"github.com/wiraa/pricedesk/internal/adapter/postgres"
	"github.com/wiraa/pricedesk/internal/adapter/ristretto"
	"github.com/wiraa/pricedesk/internal/config"
	"github.com/wiraa/pricedesk/internal/logger"
	"github.com/wiraa/pricedesk/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging))
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"pg_max_conns", cfg.Postgres.MaxConns,
	)

	ctx := context.Background()

	// --- Infrastructure ---

	// PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	// Run migrations
	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	// NATS
	queue, err := pdnats.Connect(ctx, cfg.NATS.URL)
	if err != nil {
		return fmt.Errorf("nats: %w", err)
	}
	defer func() { _ = queue.Close() }()

	// In-process cache for the pending-review projection
	cache, err := ristretto.New(cfg.Cache.MaxSizeMB << 20)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer cache.Close()

	metrics, err := pdotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Services ---
	store := postgres.NewStore(pool)
	reviewSvc := service.NewReviewService(store, queue, cache, metrics, cfg.Cache.PendingTTL)
	productSvc := service.NewProductService(store)
	matcherSvc := service.NewMatcherService(store, queue, metrics, cfg.Matcher.Threshold, cfg.Matcher.Workers)

	// --- HTTP ---
	handlers := &pdhttp.Handlers{
		Reviews:  reviewSvc,
		Products: productSvc,
		Matcher:  matcherSvc,
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(pdhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(pdhttp.RequestID)
	r.Use(pdhttp.Logger)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(pdotel.HTTPMiddleware(cfg.Logging.Service))

	// Health endpoint with service status
	r.Get("/health", healthHandler(cfg))

	// API routes
	pdhttp.MountRoutes(r, handlers)

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// healthHandler returns an http.HandlerFunc that reports service health.
func healthHandler(cfg *config.Config) http.HandlerFunc {
	type healthStatus struct {
		Status string `json:"status"`
		NATS   string `json:"nats"`
	}

	return func(w http.ResponseWriter, _ *http.Request) {
		status := healthStatus{
			Status: "ok",
			NATS:   cfg.NATS.URL,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(status)
	}
}
