package session

import (
	"context"
	"sync"
	"time"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/wallet"
)

type memoryEntry struct {
	sess      wallet.Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Expired entries are invisible
// to Get and removed by DeleteExpired.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (wallet.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[id]
	if !ok || s.now().After(entry.expiresAt) {
		return wallet.Session{}, ErrNotFound
	}
	return entry.sess, nil
}

func (s *MemoryStore) Put(_ context.Context, id string, sess wallet.Session, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = memoryEntry{sess: sess, expiresAt: expiresAt}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
