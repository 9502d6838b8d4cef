package wallet

import (
	"time"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/domain"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/pagination"
)

// SnapshotState is the lifecycle state of a session's cached balances.
type SnapshotState string

const (
	// StateEmpty means no balances have been fetched, or the last fetch failed.
	StateEmpty SnapshotState = "empty"
	// StateFetching is set between login or refresh and fetch completion.
	StateFetching SnapshotState = "fetching"
	// StateReady carries a complete enriched balance set.
	StateReady SnapshotState = "ready"
	// StateNotFound means the ledger has no such account (unfunded).
	StateNotFound SnapshotState = "not_found"
)

// Snapshot is the balance set cached for the duration of a session.
type Snapshot struct {
	State     SnapshotState            `json:"state"`
	Balances  []domain.EnrichedBalance `json:"balances,omitempty"`
	FetchedAt time.Time                `json:"fetchedAt,omitzero"`
}

// Raw returns the balances without their valuations.
func (s Snapshot) Raw() []domain.Balance {
	raw := make([]domain.Balance, len(s.Balances))
	for i, b := range s.Balances {
		raw[i] = b.Balance
	}
	return raw
}

// Session is the per-user state every wallet operation takes and returns.
type Session struct {
	AccountID string           `json:"accountId"`
	Snapshot  Snapshot         `json:"snapshot"`
	Cursors   pagination.State `json:"cursors"`
}

// NewSession returns a session for accountID with nothing fetched yet.
func NewSession(accountID string) Session {
	return Session{
		AccountID: accountID,
		Snapshot:  Snapshot{State: StateEmpty},
	}
}
