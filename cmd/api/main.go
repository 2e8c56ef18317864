package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/squadroom/platform/internal/app"
	"github.com/squadroom/platform/internal/auth"
	"github.com/squadroom/platform/internal/cache"
	"github.com/squadroom/platform/internal/changefeed"
	"github.com/squadroom/platform/internal/guard"
	"github.com/squadroom/platform/internal/infra"
	"github.com/squadroom/platform/internal/repository"
	"github.com/squadroom/platform/internal/repository/memstore"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	deps := app.RouterDeps{
		JWTMgr:             auth.NewJWTManager(cfg.JWTSecret, cfg.ClientTokenExpiry, cfg.ServiceTokenExpiry),
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Now:                time.Now,
		Location:           loc,
		Listings:           cache.NewListings(),
	}

	// Store
	switch cfg.Store {
	case infra.StoreMemory:
		store := memstore.New()
		deps.Players = store.Players()
		deps.Sessions = store.Sessions()
		deps.Attendance = store.Attendance()
		logger.Warn("using in-memory store; data is lost on exit")
	default:
		if cfg.RunMigrations {
			if err := infra.RunMigrations(cfg.DSN(), logger); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}
		}
		pool, err := infra.NewPostgresPool(ctx, cfg)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()
		logger.Info("connected to postgres")

		deps.DB = pool
		deps.Pinger = pool
		deps.Players = repository.NewPlayerRepository()
		deps.Sessions = repository.NewSessionRepository()
		deps.Attendance = repository.NewAttendanceRepository()
	}

	// Change feed
	origin := uuid.New().String()
	producer := infra.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaEnabled, logger)
	defer producer.Close()
	breaker := guard.NewCircuitBreaker(cfg.KafkaBreakerFailures, cfg.KafkaBreakerReset)
	deps.Changes = changefeed.NewBroadcaster(origin, deps.Listings, producer, logger).
		WithBreaker(breaker, cfg.KafkaTopic)

	consumer := infra.NewKafkaConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, "squadroom-cache-"+origin, cfg.KafkaEnabled, logger)
	defer consumer.Close()
	if consumer.Enabled() {
		sub := changefeed.NewSubscriber(origin, deps.Listings, consumer, logger)
		go func() {
			if err := sub.Run(ctx); err != nil {
				logger.Error("change feed subscriber failed", "error", err)
			}
		}()
	}

	// Start server
	addr := fmt.Sprintf(":%d", cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      app.NewRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "addr", addr, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	// Shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
