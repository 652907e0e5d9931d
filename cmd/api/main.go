// Copyright (c) 2026 Toolshelf. All rights reserved.

// Command api is the entry point for the Toolshelf HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (fails fast when the
//     record store credentials are missing).
//  3. Construct the record store client.
//  4. Wire HTTP handlers.
//  5. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/toolshelf/toolshelf/internal/airtable"
	"github.com/toolshelf/toolshelf/internal/api"
	"github.com/toolshelf/toolshelf/internal/platform/config"
	"github.com/toolshelf/toolshelf/internal/platform/constants"
	"github.com/toolshelf/toolshelf/internal/tool"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// Store credentials are required; a misconfigured process exits here and
	// never serves traffic.
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// ── 3. Record Store Client ────────────────────────────────────────────
	store, err := airtable.NewClient(airtable.Config{
		APIKey:  cfg.AirtableAPIKey,
		BaseID:  cfg.AirtableBaseID,
		Table:   cfg.AirtableTableName,
		BaseURL: cfg.AirtableBaseURL,
	}, log)
	must(log, err, "construct store client")

	// ── 4. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckStore: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), constants.StoreRequestTimeout)
			defer cancel()
			return store.Ping(ctx)
		},
	}, log)

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	toolRepository := tool.NewAirtableRepository(store)
	toolService := tool.NewService(toolRepository, log)
	toolHandler := tool.NewHandler(toolService)

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	shutdown := make(chan struct{})

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Tool:      toolHandler,
	}

	server := api.NewServer(shutdown, cfg, log, handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}
	close(shutdown)

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
