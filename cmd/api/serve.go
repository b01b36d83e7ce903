package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/pkordes/travel-booking/backend/internal/auth"
	"github.com/pkordes/travel-booking/backend/internal/config"
	"github.com/pkordes/travel-booking/backend/internal/handler"
	"github.com/pkordes/travel-booking/backend/internal/messaging"
	"github.com/pkordes/travel-booking/backend/internal/middleware"
	"github.com/pkordes/travel-booking/backend/internal/repo"
	"github.com/pkordes/travel-booking/backend/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// --- Config & logger --------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---------------------------------------------------------
	// pgxpool.New does not connect; the ping does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("database connection established")

	// --- Notifications ----------------------------------------------------
	publisher := newPublisher(cfg, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("close publisher", "error", err)
		}
	}()

	// --- Services ---------------------------------------------------------
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer)
	users := repo.NewUserRepo(pool)
	opts := []service.Option{service.WithPublisher(publisher), service.WithLogger(logger)}

	srv := handler.NewServer(
		service.NewTripService(repo.NewTripRepo(pool), users, opts...),
		service.NewEventService(repo.NewEventRepo(pool), users, opts...),
		service.NewAuthService(users, tokens),
		logger,
	)

	// --- HTTP server ------------------------------------------------------
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(cfg, logger, srv.Routes(tokens)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	// Give in-flight requests up to 15 seconds to finish.
	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// newRouter wraps api in the global middleware stack, outermost first:
// request ID, real IP, request logging, panic recovery, CORS, body limit.
func newRouter(cfg config.Config, logger *slog.Logger, api http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", api)
	return r
}

// newPublisher returns a Kafka publisher when brokers are configured and a
// no-op publisher otherwise.
func newPublisher(cfg config.Config, logger *slog.Logger) messaging.Publisher {
	if !cfg.KafkaEnabled() {
		logger.Info("kafka disabled, booking notifications will not be published")
		return messaging.NopPublisher{}
	}
	logger.Info("publishing booking notifications", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	return messaging.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
}
