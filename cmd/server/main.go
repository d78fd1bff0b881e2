/**
 * @description
 * This is the main entry point for the billing API server. It wires
 * together configuration, the database connection pool, repositories,
 * the billing service and the HTTP router, then serves until a
 * shutdown signal arrives.
 */
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/ferchoitu/led1-billing/internal/api"
	"github.com/ferchoitu/led1-billing/internal/app"
	"github.com/ferchoitu/led1-billing/internal/billing"
	"github.com/ferchoitu/led1-billing/internal/config"
	"github.com/ferchoitu/led1-billing/internal/store"
	"github.com/ferchoitu/led1-billing/pkg/whatsapp"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Load .env for local development; in deployment the variables come
	// from the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Establish connection to the Supabase Postgres database
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Error("unable to parse database URL", "error", err)
		os.Exit(1)
	}

	poolCfg.MaxConns = 20
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Supabase fronts the database with a transaction-pooling
	// PgBouncer; simple protocol avoids prepared statement cache
	// errors (SQLSTATE 42P05).
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	dbpool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Error("unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()
	logger.Info("database connection established")

	// Initialize application layers
	cal := billing.NewCalendar(cfg.BusinessTimezone)
	sender := whatsapp.NewClient(cfg.WhatsAppBaseURL, cfg.WhatsAppPhoneID, cfg.WhatsAppToken)
	service := app.NewService(
		store.NewClientRepository(dbpool),
		store.NewPaymentRepository(dbpool),
		store.NewNotificationRepository(dbpool),
		store.NewExpenseRepository(dbpool),
		sender,
		cal,
		logger,
		time.Duration(cfg.ReminderSendDelayMS)*time.Millisecond,
	)
	handler := api.NewHandler(service)
	router := api.NewRouter(handler, cfg.SupabaseJWTSecret, cfg.InternalAPIKey)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		logger.Info("starting server", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-sigCh
	logger.Info("shutdown signal received, gracefully shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	logger.Info("server stopped")
}
