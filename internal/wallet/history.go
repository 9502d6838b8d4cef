package wallet

import (
	"context"
	"fmt"
	"slices"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/horizon"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/pagination"
)

// Payment orders accepted by GetTransactions.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
	// OrderReversed queries newest first and returns the page oldest first.
	OrderReversed = "asc_order"
)

// GetTransactions fetches one page of the account's payments starting at cursor
// and records the page's cursors in the returned session. Records keep the
// ledger's order except for OrderReversed.
func (s *Service) GetTransactions(ctx context.Context, sess Session, cursor, order string) (Session, []horizon.Payment, error) {
	upstream := OrderDesc
	if order == OrderAsc {
		upstream = OrderAsc
	}

	page, err := s.ledger.FetchPayments(ctx, sess.AccountID, horizon.PaymentsQuery{
		Cursor: cursor,
		Order:  upstream,
		Limit:  s.cfg.PaymentsLimit,
	})
	if err != nil {
		return sess, nil, fmt.Errorf("fetching payments for %s: %w", sess.AccountID, err)
	}

	sess.Cursors = sess.Cursors.Record(pagination.StreamPayments, page.Links.Next.Href, page.Links.Prev.Href)

	records := page.Records()
	if order == OrderReversed {
		slices.Reverse(records)
	}
	return sess, records, nil
}

// GetAssets fetches one page of the ledger's asset directory and records the
// page's cursors in the returned session.
func (s *Service) GetAssets(ctx context.Context, sess Session, q horizon.AssetsQuery) (Session, []horizon.AssetRecord, error) {
	q.Limit = s.cfg.AssetsLimit
	page, err := s.ledger.FetchAssets(ctx, q)
	if err != nil {
		return sess, nil, fmt.Errorf("fetching assets: %w", err)
	}

	sess.Cursors = sess.Cursors.Record(pagination.StreamAssets, page.Links.Next.Href, page.Links.Prev.Href)
	return sess, page.Records(), nil
}

// CursorFor picks the cursor of a page request: an explicit cursor wins,
// otherwise page ("next" or "prev") selects the one stored for stream.
func CursorFor(sess Session, stream pagination.Stream, cursor, page string) string {
	if cursor != "" {
		return cursor
	}
	dir, ok := pagination.ParseDirection(page)
	if !ok {
		return ""
	}
	stored, _ := sess.Cursors.Current(stream, dir)
	return stored
}
