package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/wallet"
)

const (
	idBytes = 32
	// saveTimeout bounds a session write once the caller's context is gone.
	saveTimeout = 5 * time.Second
)

// Manager creates sessions and runs updates on them with exclusive access per
// session id. Reads do not lock, so a concurrent reader sees the last saved
// state, e.g. the fetching marker while a refresh is in flight.
type Manager struct {
	store Store
	ttl   time.Duration
	locks *keyedMutex
	now   func() time.Time
}

// NewManager creates a Manager whose sessions live ttl past their last write.
func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{
		store: store,
		ttl:   ttl,
		locks: newKeyedMutex(),
		now:   time.Now,
	}
}

// Create stores sess under a fresh random id.
func (m *Manager) Create(ctx context.Context, sess wallet.Session) (string, error) {
	id, err := newID()
	if err != nil {
		return "", err
	}
	if err := m.Save(ctx, id, sess); err != nil {
		return "", err
	}
	return id, nil
}

// Get returns the current state of a session.
func (m *Manager) Get(ctx context.Context, id string) (wallet.Session, error) {
	return m.store.Get(ctx, id)
}

// Save writes sess and extends its lifetime. Inside Update it publishes
// intermediate state to readers.
//
// The write outlives cancellation of ctx: a request that timed out must still
// record the state it ended in.
func (m *Manager) Save(ctx context.Context, id string, sess wallet.Session) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	if err := m.store.Put(ctx, id, sess, m.now().Add(m.ttl)); err != nil {
		return fmt.Errorf("saving session %s: %w", id, err)
	}
	return nil
}

// Update loads the session, applies fn and saves the session fn returns, all
// while holding the session's lock. The returned session is saved even when fn
// fails, so fn must always return the state to keep.
func (m *Manager) Update(ctx context.Context, id string, fn func(wallet.Session) (wallet.Session, error)) (wallet.Session, error) {
	unlock := m.locks.Lock(id)
	defer unlock()

	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return wallet.Session{}, err
	}

	updated, fnErr := fn(sess)
	if err := m.Save(ctx, id, updated); err != nil {
		return updated, err
	}
	return updated, fnErr
}

// Delete removes a session. It waits for a running Update of the same session,
// so the update cannot write the session back afterwards.
func (m *Manager) Delete(ctx context.Context, id string) error {
	unlock := m.locks.Lock(id)
	defer unlock()

	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	return nil
}

func newID() (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
