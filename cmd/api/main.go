// Package main is the entry point for the geo-tracking API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pkordes/geotracking/internal/config"
	"github.com/pkordes/geotracking/internal/events"
	"github.com/pkordes/geotracking/internal/handler"
	"github.com/pkordes/geotracking/internal/metrics"
	"github.com/pkordes/geotracking/internal/middleware"
	"github.com/pkordes/geotracking/internal/repo"
	"github.com/pkordes/geotracking/internal/service"
	"github.com/pkordes/geotracking/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		db := stdlib.OpenDBFromPool(pool)
		results, err := migrations.Up(context.Background(), db)
		_ = db.Close()
		if err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied", "count", len(results))
	}

	// --- Events -----------------------------------------------------------
	var publisher service.EventPublisher = events.NopPublisher{}
	if cfg.RedisURL != "" {
		p, err := events.NewPublisher(cfg.RedisURL)
		if err != nil {
			slog.Error("failed to configure event publisher", "error", err)
			os.Exit(1)
		}
		defer p.Close()
		if err := p.Ping(context.Background()); err != nil {
			// Publishing is best effort; ingestion still works without Redis.
			slog.Warn("event stream unreachable at startup", "error", err)
		}
		publisher = p
		slog.Info("record events enabled", "stream", events.StreamRecordEvents)
	}

	// --- Services ---------------------------------------------------------
	reg := metrics.NewRegistry(prometheus.NewRegistry())
	records := service.NewGeoTrackingService(
		repo.NewGeoTrackingRepo(pool),
		repo.NewUserRepo(pool),
		publisher,
		reg,
		logger,
	)
	srvHandler := handler.NewServer(records, pool, logger)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Metrics → Logger →
	// Recoverer → CORS. RealIP must precede the rate limiter, which keys on
	// r.RemoteAddr.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewMetricsHandler(reg))
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))

	r.Handle("/metrics", reg.Handler())
	r.Mount("/", srvHandler.Routes(
		limiter.Handler,
		middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes),
	))

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
