// Package main is the entry point for the Saju API server.
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

	"golang.org/x/sync/errgroup"

	"github.com/zapponejosh/saju-api/internal/api"
	"github.com/zapponejosh/saju-api/internal/buildinfo"
	"github.com/zapponejosh/saju-api/internal/calendar"
	"github.com/zapponejosh/saju-api/internal/config"
	"github.com/zapponejosh/saju-api/internal/dateadapter"
	"github.com/zapponejosh/saju-api/internal/logger"
	"github.com/zapponejosh/saju-api/internal/mcptools"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Setup structured logging
	log := logger.Setup(cfg)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	backend, err := dateadapter.ParseBackend(cfg.DateBackend)
	if err != nil {
		return err
	}

	svc, err := calendar.NewService(backend, calendar.Defaults{
		Timezone:  cfg.DefaultTimezone,
		Longitude: cfg.DefaultLongitude,
		Preset:    cfg.DefaultPreset,
	})
	if err != nil {
		return fmt.Errorf("create calculation service: %w", err)
	}

	var mcpHandler http.Handler
	if cfg.MCPEnabled {
		mcpHandler = mcptools.HTTPHandler(mcptools.NewServer(svc, buildinfo.Version))
	}

	handlers := api.NewHandlers(svc, cfg, log)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.SetupRoutes(handlers, cfg, log, mcpHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("starting saju API",
		slog.String("version", buildinfo.Version),
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("date_backend", string(backend)),
		slog.Bool("mcp_enabled", cfg.MCPEnabled),
		slog.Bool("auth_enabled", cfg.APIKey != ""),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// HTTP
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("saju API stopped")
	return nil
}
