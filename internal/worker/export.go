package worker

import (
	"context"
	"log/slog"
	"time"
)

// BalanceExporter exports the balances of one account.
type BalanceExporter interface {
	Export(ctx context.Context, accountID string) error
}

// ExportWorker periodically exports an account's balances.
type ExportWorker struct {
	exporter  BalanceExporter
	accountID string
	interval  time.Duration
}

// NewExportWorker creates a new ExportWorker for accountID.
func NewExportWorker(exporter BalanceExporter, accountID string, interval time.Duration) *ExportWorker {
	return &ExportWorker{
		exporter:  exporter,
		accountID: accountID,
		interval:  interval,
	}
}

func (w *ExportWorker) export(ctx context.Context) {
	if err := w.exporter.Export(ctx, w.accountID); err != nil {
		slog.Error("ExportWorker: export failed", "account", w.accountID, "error", err)
	} else {
		slog.Info("ExportWorker: export completed", "account", w.accountID)
	}
}

// Run starts the export loop. It blocks until the context is cancelled.
func (w *ExportWorker) Run(ctx context.Context) {
	slog.Info("ExportWorker: starting", "account", w.accountID, "interval", w.interval)

	// Export immediately on startup
	w.export(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("ExportWorker: shutting down")
			return
		case <-ticker.C:
			w.export(ctx)
		}
	}
}
