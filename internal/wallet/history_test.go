package wallet

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/horizon"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/pagination"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/remote"
)

func paymentsPage(ids ...string) remote.Page[horizon.Payment] {
	var page remote.Page[horizon.Payment]
	page.Links.Next.Href = "https://horizon.stellar.org/accounts/G/payments?cursor=ABC123&limit=10&order=desc"
	page.Links.Prev.Href = "https://horizon.stellar.org/accounts/G/payments?cursor=XYZ789&limit=10&order=asc"
	for _, id := range ids {
		page.Embedded.Records = append(page.Embedded.Records, horizon.Payment{ID: id})
	}
	return page
}

func TestGetTransactionsRecordsCursors(t *testing.T) {
	ledger := &mockLedger{payments: paymentsPage("1", "2")}
	svc := NewService(ledger, &mockPrices{}, DefaultConfig())

	sess, records, err := svc.GetTransactions(context.Background(), NewSession(accountID), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 || records[0].ID != "1" {
		t.Errorf("records = %+v", records)
	}
	if ledger.paymentsSeen.Limit != horizon.DefaultPaymentsLimit {
		t.Errorf("limit = %d, want %d", ledger.paymentsSeen.Limit, horizon.DefaultPaymentsLimit)
	}
	if next, _ := sess.Cursors.Current(pagination.StreamPayments, pagination.Next); next != "ABC123" {
		t.Errorf("next cursor = %q, want ABC123", next)
	}
	if prev, _ := sess.Cursors.Current(pagination.StreamPayments, pagination.Prev); prev != "XYZ789" {
		t.Errorf("prev cursor = %q, want XYZ789", prev)
	}
	if _, ok := sess.Cursors.Current(pagination.StreamAssets, pagination.Next); ok {
		t.Error("assets cursors must be untouched")
	}
}

func TestGetTransactionsOrder(t *testing.T) {
	tests := []struct {
		name         string
		order        string
		wantUpstream string
		wantFirst    string
		wantLast     string
	}{
		{"default", "", OrderDesc, "1", "3"},
		{"descending", OrderDesc, OrderDesc, "1", "3"},
		{"ascending keeps ledger order", OrderAsc, OrderAsc, "1", "3"},
		{"reversed queries desc", OrderReversed, OrderDesc, "3", "1"},
		{"unknown falls back to desc", "sideways", OrderDesc, "1", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &mockLedger{payments: paymentsPage("1", "2", "3")}
			svc := NewService(ledger, &mockPrices{}, DefaultConfig())

			_, records, err := svc.GetTransactions(context.Background(), NewSession(accountID), "XYZ789", tt.order)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ledger.paymentsSeen.Cursor != "XYZ789" || ledger.paymentsSeen.Order != tt.wantUpstream {
				t.Errorf("query = %+v, want order %s", ledger.paymentsSeen, tt.wantUpstream)
			}
			if records[0].ID != tt.wantFirst || records[2].ID != tt.wantLast {
				t.Errorf("records order = %s,%s,%s, want first %s last %s",
					records[0].ID, records[1].ID, records[2].ID, tt.wantFirst, tt.wantLast)
			}
		})
	}
}

func TestGetTransactionsFailureKeepsCursors(t *testing.T) {
	ledger := &mockLedger{paymentsErr: fmt.Errorf("%w: HTTP 502", remote.ErrServerError)}
	svc := NewService(ledger, &mockPrices{}, DefaultConfig())
	sess := NewSession(accountID)
	sess.Cursors = sess.Cursors.Record(pagination.StreamPayments, "/p?cursor=OLD", "")

	sess, _, err := svc.GetTransactions(context.Background(), sess, "", "")
	if !errors.Is(err, remote.ErrServerError) {
		t.Fatalf("err = %v, want ErrServerError", err)
	}
	if next, _ := sess.Cursors.Current(pagination.StreamPayments, pagination.Next); next != "OLD" {
		t.Errorf("next cursor = %q, want OLD", next)
	}
}

func TestGetAssets(t *testing.T) {
	var page remote.Page[horizon.AssetRecord]
	page.Links.Next.Href = "/assets?cursor=NEXTASSET"
	page.Embedded.Records = []horizon.AssetRecord{{AssetCode: "USD", AssetIssuer: "GISSUER"}}
	ledger := &mockLedger{assets: page}
	svc := NewService(ledger, &mockPrices{}, DefaultConfig())

	sess, records, err := svc.GetAssets(context.Background(), NewSession(accountID), horizon.AssetsQuery{Code: "USD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want 1", len(records))
	}
	if ledger.assetsSeen.Code != "USD" || ledger.assetsSeen.Limit != horizon.DefaultAssetsLimit {
		t.Errorf("query = %+v", ledger.assetsSeen)
	}
	if next, _ := sess.Cursors.Current(pagination.StreamAssets, pagination.Next); next != "NEXTASSET" {
		t.Errorf("next cursor = %q, want NEXTASSET", next)
	}
	if _, ok := sess.Cursors.Current(pagination.StreamAssets, pagination.Prev); ok {
		t.Error("prev cursor should be empty")
	}
}

func TestCursorFor(t *testing.T) {
	sess := NewSession(accountID)
	sess.Cursors = sess.Cursors.Record(pagination.StreamPayments, "/p?cursor=N1", "/p?cursor=P1")

	tests := []struct {
		name, cursor, page, want string
	}{
		{"explicit wins", "EXPLICIT", "next", "EXPLICIT"},
		{"next", "", "next", "N1"},
		{"prev", "", "prev", "P1"},
		{"none", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CursorFor(sess, pagination.StreamPayments, tt.cursor, tt.page); got != tt.want {
				t.Errorf("CursorFor() = %q, want %q", got, tt.want)
			}
		})
	}
}
