/**
 * @description
 * This is the main entry point for the reminder runner. It is a
 * non-HTTP, long-running process that triggers the batch WhatsApp
 * reminder run on the billing API server on a cron schedule, in the
 * business timezone. The billing core itself stays trigger-agnostic;
 * this process is just the external invocation.
 */
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/ferchoitu/led1-billing/internal/billing"
	"github.com/ferchoitu/led1-billing/internal/config"
	"github.com/ferchoitu/led1-billing/pkg/reminderclient"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	client := reminderclient.NewClient(cfg.ServerBaseURL, cfg.InternalAPIKey)
	cal := billing.NewCalendar(cfg.BusinessTimezone)

	runOnce := func() {
		logger.Info("starting reminder run")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		summary, err := client.RunReminders(ctx)
		if err != nil {
			logger.Error("reminder run failed", "error", err)
			return
		}

		logger.Info("reminder run finished",
			"processed", summary.Processed,
			"sent", summary.Sent,
			"failed", summary.Failed,
			"skipped_paid", summary.SkippedPaid,
			"skipped_opt_out", summary.SkippedOptOut,
		)
	}

	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(
		cron.WithLocation(cal.Location()),
		cron.WithChain(cron.Recover(cronLogger)),
	)

	if _, err := c.AddFunc(cfg.ReminderCronSpec, runOnce); err != nil {
		logger.Error("failed to schedule reminder run", "error", err, "schedule", cfg.ReminderCronSpec)
		os.Exit(1)
	}
	logger.Info("scheduled reminder run", "schedule", cfg.ReminderCronSpec, "timezone", cal.Location().String())

	c.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping scheduler")
	stopCtx := c.Stop()
	<-stopCtx.Done()
	logger.Info("scheduler stopped gracefully")
}
