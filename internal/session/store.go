// Package session persists wallet sessions and serializes updates to each one.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/wallet"
)

// ErrNotFound indicates that the session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// Store defines persistent storage for wallet sessions.
type Store interface {
	Get(ctx context.Context, id string) (wallet.Session, error)
	Put(ctx context.Context, id string, sess wallet.Session, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes sessions that expired before now and returns how many.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
