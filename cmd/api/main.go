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

	"github.com/nyashahama/pipeline-snapshot-mailer/internal/api"
	"github.com/nyashahama/pipeline-snapshot-mailer/internal/config"
	"github.com/nyashahama/pipeline-snapshot-mailer/internal/email"
)

func main() {
	// ── Logger ────────────────────────────────────────────────────────────────
	// JSON in production, pretty text in development.
	var logger *slog.Logger
	if os.Getenv("ENV") == "production" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// ── Config ────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Info("config loaded",
		"env", cfg.Env,
		"port", cfg.Port,
		"sendgrid_configured", cfg.SendGridConfigured(),
	)
	if !cfg.SendGridConfigured() {
		// Tolerated at startup so /health and /logs stay useful on a fresh
		// deploy, but every send will fail until the key is set.
		logger.Warn("SENDGRID_API_KEY is not set — sends will fail")
	}

	// ── Email (SendGrid) ──────────────────────────────────────────────────────
	mailer := email.NewSendGridClient(cfg.SendGridAPIKey, cfg.FromAddr, cfg.FromName)

	// ── HTTP server ───────────────────────────────────────────────────────────
	handler := api.NewServer(mailer, api.Config{
		Env:                cfg.Env,
		SendGridConfigured: cfg.SendGridConfigured(),
		MaxBodyBytes:       cfg.MaxBodyBytes,
	}, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  60 * time.Second, // generous — 50 MB bodies over slow links
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	// Root context cancelled by OS signal; in-flight sends get time to finish.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until either a signal arrives or the server dies unexpectedly.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	// Give in-flight HTTP requests up to 20 seconds to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
