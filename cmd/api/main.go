// Package main is the entry point for the trip planner API server.
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
	_ "time/tzdata" // TRIP_TIMEZONE must resolve in minimal containers

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tripplanner/backend/internal/config"
	"github.com/tripplanner/backend/internal/events"
	"github.com/tripplanner/backend/internal/handler"
	"github.com/tripplanner/backend/internal/middleware"
	"github.com/tripplanner/backend/internal/notify"
	"github.com/tripplanner/backend/internal/repo"
	"github.com/tripplanner/backend/internal/service"
	"github.com/tripplanner/backend/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Default logger writes to stderr until ours is configured.
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

	ctx := context.Background()

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// goose needs a database/sql handle; borrow one from the pool.
	sqlDB := stdlib.OpenDBFromPool(pool)
	applied, err := migrations.Up(ctx, sqlDB)
	_ = sqlDB.Close()
	if err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied", "count", applied)

	// --- Notifications & events -------------------------------------------
	var dispatcher notify.Dispatcher
	if cfg.SMTPHost != "" {
		dispatcher = notify.NewSMTPDispatcher(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
		slog.Info("mail via smtp", "host", cfg.SMTPHost, "port", cfg.SMTPPort)
	} else {
		dispatcher = notify.NewLogDispatcher(logger)
		slog.Warn("SMTP_HOST not set; mail is logged, not sent")
	}
	inviter := service.NewInviter(dispatcher, notify.NewComposer(cfg.Location), service.InviterConfig{
		BaseURL:     cfg.APIBaseURL,
		Timeout:     cfg.NotifyTimeout,
		Concurrency: cfg.NotifyConcurrency,
	}, logger)

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() {
			if err := kp.Close(); err != nil {
				slog.Error("kafka writer close", "error", err)
			}
		}()
		publisher = kp
		slog.Info("publishing trip events", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	// --- Services ---------------------------------------------------------
	trips := repo.NewTripRepo(pool)
	participants := repo.NewParticipantRepo(pool)
	activities := repo.NewActivityRepo(pool)
	links := repo.NewLinkRepo(pool)
	clock := service.SystemClock{}

	api := handler.NewServer(
		service.NewTripService(trips, participants, inviter, publisher, clock, logger),
		service.NewParticipantService(trips, participants, inviter, publisher, clock, logger),
		service.NewActivityService(trips, activities, cfg.Location),
		service.NewLinkService(trips, links),
		service.NewItineraryService(trips, activities),
	)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit → per-request timeout.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", api.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Write timeout leaves room for the request timeout plus encoding.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		return
	}
	slog.Info("server stopped")
}
