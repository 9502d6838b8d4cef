package worker

import (
	"context"
	"log/slog"
	"time"
)

// ExpiredSessionDeleter removes sessions past their expiry.
type ExpiredSessionDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// ReapObserver is notified of how many sessions each sweep removed.
type ReapObserver interface {
	ObserveReaped(n int)
}

// SessionReaper periodically deletes expired sessions.
type SessionReaper struct {
	store    ExpiredSessionDeleter
	interval time.Duration
	observer ReapObserver // optional
}

// NewSessionReaper creates a new SessionReaper with an optional observer.
func NewSessionReaper(store ExpiredSessionDeleter, interval time.Duration, observer ReapObserver) *SessionReaper {
	return &SessionReaper{
		store:    store,
		interval: interval,
		observer: observer,
	}
}

func (w *SessionReaper) sweep(ctx context.Context) {
	n, err := w.store.DeleteExpired(ctx, time.Now())
	if err != nil {
		slog.Error("SessionReaper: sweep failed", "error", err)
		return
	}
	if w.observer != nil {
		w.observer.ObserveReaped(n)
	}
	if n > 0 {
		slog.Info("SessionReaper: removed expired sessions", "count", n)
	}
}

// Run starts the reaper loop. It blocks until the context is cancelled.
func (w *SessionReaper) Run(ctx context.Context) {
	slog.Info("SessionReaper: starting", "interval", w.interval)

	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("SessionReaper: shutting down")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}
