// BOJ daily check-in batch job
//
// Usage:
//
//	bot check                  evaluate everyone and post the daily status
//	bot ranking                evaluate everyone and post the all-time ranking
//	bot reset                  re-baseline solved counts from solved.ac
//	bot add <handle> [name]    register a handle
//	bot remove <handle>        unregister a handle
//	bot list                   print registered users
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ashureev/boj-daily/internal/config"
	"github.com/ashureev/boj-daily/internal/notify"
	"github.com/ashureev/boj-daily/internal/solvedac"
	"github.com/ashureev/boj-daily/internal/store"
	"github.com/ashureev/boj-daily/internal/tracker"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	if len(os.Args) < 2 {
		usage(os.Stderr)
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return exitFailure
	}

	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return exitFailure
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	svc, err := tracker.NewService(repo, solvedac.NewClient(cfg.SolvedACBaseURL, cfg.HTTPTimeout), tracker.Options{
		Policy:   cfg.LapsePolicy,
		Location: cfg.Location(),
		Logger:   logger,
	})
	if err != nil {
		slog.Error("Failed to initialize tracker", "error", err)
		return exitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		tracker:  svc,
		notifier: notify.NewDiscord(cfg.WebhookURL, cfg.HTTPTimeout),
		out:      os.Stdout,
		logger:   logger,
	}
	return a.run(ctx, os.Args[1:])
}
