// Package app wires configuration, storage, the import service and the HTTP
// server together. Both cmd/server and "etl serve" run through Serve.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/barista/internal/config"
	"github.com/JonMunkholm/barista/internal/core"
	_ "github.com/JonMunkholm/barista/internal/core/tables" // register all models
	"github.com/JonMunkholm/barista/internal/store"
	"github.com/JonMunkholm/barista/internal/web"
)

// Serve runs the HTTP server until ctx is cancelled, then stops accepting
// requests and drains running imports within cfg.Server.ShutdownTimeout.
func Serve(ctx context.Context, cfg *config.Config) error {
	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"driver", cfg.Database.Driver,
		"db_max_conns", cfg.Database.MaxConns,
		"upload_max_concurrent", cfg.Upload.MaxConcurrent,
		"metrics_enabled", cfg.Metrics.Enabled,
	)

	gw, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := gw.Close(); err != nil {
			slog.Warn("close store", "error", err)
		}
	}()

	service := core.NewService(gw, cfg.Upload)
	slog.Info("models registered", "count", core.ModelCount())

	server := web.NewServer(service, gw, cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := shutdown(shutdownCtx, server, service); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type stopper interface {
	Shutdown(ctx context.Context) error
}

type importDrainer interface {
	LimiterStatus() core.ImportLimiterStatus
	WaitForImports(ctx context.Context) error
}

// shutdown closes the listener first so no new upload can start, then waits
// for imports that are still running.
func shutdown(ctx context.Context, srv stopper, imports importDrainer) error {
	shutdownErr := srv.Shutdown(ctx)

	if status := imports.LimiterStatus(); status.Active > 0 {
		slog.Info("waiting for imports to complete", "active", status.Active)
		if err := imports.WaitForImports(ctx); err != nil {
			slog.Warn("imports did not complete in time", "error", err)
		} else {
			slog.Info("all imports completed")
		}
	}

	if shutdownErr != nil {
		return fmt.Errorf("shutdown: %w", shutdownErr)
	}
	return nil
}
