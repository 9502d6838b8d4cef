// Package wallet implements the balance, pricing and transfer-limit operations
// of a Stellar wallet session.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/domain"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/horizon"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/pagination"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/price"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/remote"
)

var (
	// ErrAccountNotFound means the ledger reports no such account.
	ErrAccountNotFound = errors.New("account not found")
	// ErrBalancesFetching means a balance refresh has not completed yet.
	ErrBalancesFetching = errors.New("balances are being fetched")
	// ErrBalancesUnavailable means no balance snapshot could be produced.
	ErrBalancesUnavailable = errors.New("balances unavailable")
)

// Ledger defines the subset of the Horizon API used by Service.
type Ledger interface {
	FetchBalances(ctx context.Context, accountID string) ([]domain.Balance, error)
	FetchLatestTrade(ctx context.Context, asset domain.AssetInfo) (*domain.TradeRecord, error)
	FetchPayments(ctx context.Context, accountID string, q horizon.PaymentsQuery) (remote.Page[horizon.Payment], error)
	FetchAssets(ctx context.Context, q horizon.AssetsQuery) (remote.Page[horizon.AssetRecord], error)
}

// PriceSource provides the native asset USD price.
type PriceSource interface {
	FetchNativeUSDPrice(ctx context.Context) (decimal.Decimal, error)
}

// EnrichObserver is notified of every balance refresh outcome.
type EnrichObserver interface {
	ObserveEnrich(outcome string)
}

// Config holds the business parameters of Service.
type Config struct {
	Reserve       domain.ReserveParams
	PaymentsLimit int
	AssetsLimit   int
}

// DefaultConfig returns the ledger's standard reserve model and page sizes.
func DefaultConfig() Config {
	return Config{
		Reserve:       domain.DefaultReserveParams(),
		PaymentsLimit: horizon.DefaultPaymentsLimit,
		AssetsLimit:   horizon.DefaultAssetsLimit,
	}
}

// Service implements the wallet operations over an explicit Session value.
type Service struct {
	ledger   Ledger
	prices   PriceSource
	cfg      Config
	observer EnrichObserver
	now      func() time.Time
}

// NewService creates a new wallet Service. An optional EnrichObserver receives refresh outcomes.
func NewService(ledger Ledger, prices PriceSource, cfg Config, observers ...EnrichObserver) *Service {
	var observer EnrichObserver
	if len(observers) > 0 {
		observer = observers[0]
	}
	return &Service{
		ledger:   ledger,
		prices:   prices,
		cfg:      cfg,
		observer: observer,
		now:      time.Now,
	}
}

// Enter starts a fresh view of the account: both cursor pairs are cleared and
// the snapshot is marked as fetching until RefreshBalances completes.
func (s *Service) Enter(sess Session) Session {
	sess.Cursors = pagination.State{}
	return s.MarkFetching(sess)
}

// MarkFetching replaces the snapshot with the fetching marker.
func (s *Service) MarkFetching(sess Session) Session {
	sess.Snapshot = Snapshot{State: StateFetching}
	return sess
}

// Enrich values every balance in USD. The native price is fetched once for the
// whole batch and each priced asset costs one latest-trade query. The first
// failure aborts the run.
func (s *Service) Enrich(ctx context.Context, raw []domain.Balance) ([]domain.EnrichedBalance, error) {
	nativeUSD, err := s.prices.FetchNativeUSDPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching native price: %w", err)
	}

	enriched := make([]domain.EnrichedBalance, 0, len(raw))
	for _, b := range raw {
		var trade *domain.TradeRecord
		if price.NeedsTrade(b) {
			trade, err = s.ledger.FetchLatestTrade(ctx, b.Asset)
			if err != nil {
				return nil, fmt.Errorf("fetching latest trade for %s: %w", b.Asset.Canonical(), err)
			}
		}
		enriched = append(enriched, domain.EnrichedBalance{
			Balance: b,
			USD:     price.DeriveUSD(b, trade, nativeUSD),
		})
	}
	return enriched, nil
}

// RefreshBalances fetches and enriches the account balances.
//
// The returned session always reflects the outcome: Ready with the new
// balances, NotFound for an unfunded account (with ErrAccountNotFound), or
// Empty after any remote failure (with ErrBalancesUnavailable).
func (s *Service) RefreshBalances(ctx context.Context, sess Session) (Session, []domain.EnrichedBalance, error) {
	raw, err := s.ledger.FetchBalances(ctx, sess.AccountID)
	if errors.Is(err, remote.ErrNotFound) {
		slog.Info("account not found on ledger", "account", sess.AccountID)
		sess.Snapshot = Snapshot{State: StateNotFound}
		s.observe("not_found")
		return sess, nil, ErrAccountNotFound
	}
	if err != nil {
		return s.refreshFailed(sess, err)
	}

	enriched, err := s.Enrich(ctx, raw)
	if err != nil {
		return s.refreshFailed(sess, err)
	}

	sess.Snapshot = Snapshot{
		State:     StateReady,
		Balances:  enriched,
		FetchedAt: s.now(),
	}
	s.observe("ok")
	return sess, enriched, nil
}

func (s *Service) refreshFailed(sess Session, err error) (Session, []domain.EnrichedBalance, error) {
	slog.Error("failed to refresh balances", "account", sess.AccountID, "error", err)
	sess.Snapshot = Snapshot{State: StateEmpty}
	s.observe(remote.Outcome(err))
	return sess, nil, fmt.Errorf("%w: %w", ErrBalancesUnavailable, err)
}

func (s *Service) observe(outcome string) {
	if s.observer != nil {
		s.observer.ObserveEnrich(outcome)
	}
}

// Balances returns the cached snapshot balances, gated on the snapshot state.
func (s *Service) Balances(sess Session) ([]domain.EnrichedBalance, error) {
	switch sess.Snapshot.State {
	case StateReady:
		return sess.Snapshot.Balances, nil
	case StateFetching:
		return nil, ErrBalancesFetching
	case StateNotFound:
		return nil, ErrAccountNotFound
	default:
		return nil, ErrBalancesUnavailable
	}
}
