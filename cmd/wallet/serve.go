package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/api"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/config"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/database"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/export"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/metrics"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/session"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/worker"
)

func serveCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the wallet HTTP API",
		Action: func(c *cli.Context) error {
			return serve(c.Context, cfg)
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	collector := metrics.NewCollector()
	walletSvc := newWalletService(cfg, collector)

	store, closeStore, err := openSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	sessions := session.NewManager(store, cfg.SessionTTL)

	reaper := worker.NewSessionReaper(store, cfg.SessionSweepInterval, collector)
	go reaper.Run(ctx)

	if cfg.SheetsExportEnabled() {
		writer, err := export.NewSheetsWriter(ctx, cfg.GoogleSheetsID, cfg.GoogleCredentialsJSON)
		if err != nil {
			return fmt.Errorf("creating sheets writer: %w", err)
		}
		exportWorker := worker.NewExportWorker(export.NewService(walletSvc, writer), cfg.ExportAccount, cfg.ExportInterval)
		go exportWorker.Run(ctx)
	}

	if cfg.MetricsAPIKey == "" {
		slog.Warn("METRICS_API_KEY not set, /metrics is unprotected")
	}

	handler := api.NewHandler(walletSvc, sessions, cfg.SessionTTL)
	srv := api.NewServer(api.ServerConfig{
		Port:           cfg.HTTPPort,
		RequestTimeout: cfg.RequestTimeout,
		MetricsAPIKey:  cfg.MetricsAPIKey,
	}, handler, collector.Handler())

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("HTTP server: %w", err)
	}
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// openSessionStore returns a PostgreSQL store when DATABASE_URL is set and an
// in-memory store otherwise.
func openSessionStore(ctx context.Context, cfg config.Config) (session.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		slog.Warn("DATABASE_URL not set, sessions are kept in memory")
		return session.NewMemoryStore(), func() {}, nil
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	migrationsSub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("creating migrations sub-fs: %w", err)
	}
	if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}

	return session.NewPgStore(pool), pool.Close, nil
}
