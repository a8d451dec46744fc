package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/terra-clan/loan-engine/internal/api"
	"github.com/terra-clan/loan-engine/internal/backend"
	"github.com/terra-clan/loan-engine/internal/config"
	"github.com/terra-clan/loan-engine/internal/rules"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	slog.Info("starting loan-engine",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Load the rulebase manifest
	manifest, err := rules.LoadOrDefault(cfg.Rules.ManifestPath)
	if err != nil {
		slog.Error("failed to load rules manifest", "path", cfg.Rules.ManifestPath, "error", err)
		os.Exit(1)
	}

	// Assemble the decision backends
	builtin := backend.NewBuiltin(manifest)

	var external *backend.External
	var primary backend.Backend
	if cfg.RuleBackend.URL != "" {
		external = backend.NewExternal(cfg.RuleBackend.URL, manifest.Rulebase.Name,
			backend.WithTimeout(cfg.RuleBackend.QueryTimeout))
		primary = external
	}

	selector := backend.NewSelector(primary, builtin)

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	selector.Initialize(initCtx)
	initCancel()

	slog.Info("decision backend selected", "mode", selector.Mode())

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Probe the external backend while it is in use
	if selector.Mode() == backend.ModeReady {
		prober := backend.NewProber(external, cfg.RuleBackend.ProbeInterval)
		prober.Start(ctx)
	}

	// Setup HTTP server
	server := api.NewServer(cfg.Server, selector)
	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("loan-engine stopped")
}
