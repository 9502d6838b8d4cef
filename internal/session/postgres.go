package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/wallet"
)

// PgStore implements Store with PostgreSQL, keeping each session as a jsonb document.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a new PostgreSQL session store.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func (s *PgStore) Get(ctx context.Context, id string) (wallet.Session, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM wallet_sessions
		 WHERE id = $1 AND expires_at > NOW()`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return wallet.Session{}, ErrNotFound
		}
		return wallet.Session{}, fmt.Errorf("getting session: %w", err)
	}

	var sess wallet.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return wallet.Session{}, fmt.Errorf("decoding session %s: %w", id, err)
	}
	return sess, nil
}

func (s *PgStore) Put(ctx context.Context, id string, sess wallet.Session, expiresAt time.Time) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO wallet_sessions (id, account_id, data, expires_at, updated_at)
		 VALUES ($1, $2, $3::jsonb, $4, NOW())
		 ON CONFLICT (id)
		 DO UPDATE SET account_id = $2, data = $3::jsonb, expires_at = $4, updated_at = NOW()`,
		id, sess.AccountID, data, expiresAt)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (s *PgStore) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM wallet_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (s *PgStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM wallet_sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
