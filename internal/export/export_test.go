package export

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/domain"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/reserve"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/wallet"
)

var usd = domain.AssetInfo{Code: "USD", Issuer: "GISSUER", Type: domain.AssetTypeCreditAlphanum4}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type mockBalanceService struct {
	balances []domain.EnrichedBalance
	err      error
}

func (m *mockBalanceService) RefreshBalances(_ context.Context, sess wallet.Session) (wallet.Session, []domain.EnrichedBalance, error) {
	if m.err != nil {
		return sess, nil, m.err
	}
	sess.Snapshot = wallet.Snapshot{State: wallet.StateReady, Balances: m.balances}
	return sess, m.balances, nil
}

func (m *mockBalanceService) MaxTransferable(sess wallet.Session, asset domain.AssetInfo) (domain.TransferLimit, error) {
	return reserve.MaxTransferable(sess.Snapshot.Raw(), asset, domain.DefaultReserveParams())
}

type recordingWriter struct {
	reports []Report
}

func (w *recordingWriter) Write(_ context.Context, report Report) error {
	w.reports = append(w.reports, report)
	return nil
}

func sampleBalances() []domain.EnrichedBalance {
	return []domain.EnrichedBalance{
		{Balance: domain.Balance{Asset: usd, Amount: d("50")}, USD: domain.USD(d("2.5"))},
		{Balance: domain.Balance{Asset: domain.AssetInfo{Type: domain.AssetTypePoolShare}, Amount: d("3"), LiquidityPoolID: "abc"}, USD: domain.Undetermined()},
		{Balance: domain.Balance{Asset: domain.NativeAsset(), Amount: d("120")}, USD: domain.USD(d("12"))},
	}
}

func TestBuildReport(t *testing.T) {
	svc := NewService(&mockBalanceService{balances: sampleBalances()}, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }

	report, err := svc.Build(context.Background(), "GACCOUNT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(report.Rows))
	}

	if report.Rows[0].Asset != "USD" || report.Rows[0].MaxTransferable.String() != "50" {
		t.Errorf("row[0] = %+v", report.Rows[0])
	}
	if report.Rows[1].Asset != "pool:abc" || report.Rows[1].MaxTransferable != nil {
		t.Errorf("row[1] = %+v, want pool without limit", report.Rows[1])
	}
	if report.Rows[2].Asset != "XLM" || report.Rows[2].MaxTransferable.String() != "118.49999" {
		t.Errorf("row[2] = %+v", report.Rows[2])
	}
	if !report.TotalUSD().Equal(d("14.5")) {
		t.Errorf("total USD = %s, want 14.5", report.TotalUSD())
	}
}

func TestExportWritesReport(t *testing.T) {
	writer := &recordingWriter{}
	svc := NewService(&mockBalanceService{balances: sampleBalances()}, writer)

	if err := svc.Export(context.Background(), "GACCOUNT"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(writer.reports) != 1 || writer.reports[0].AccountID != "GACCOUNT" {
		t.Errorf("reports = %+v", writer.reports)
	}
}

func TestExportPropagatesRefreshError(t *testing.T) {
	writer := &recordingWriter{}
	svc := NewService(&mockBalanceService{err: wallet.ErrAccountNotFound}, writer)

	err := svc.Export(context.Background(), "GACCOUNT")
	if !errors.Is(err, wallet.ErrAccountNotFound) {
		t.Errorf("err = %v, want ErrAccountNotFound", err)
	}
	if len(writer.reports) != 0 {
		t.Error("nothing should be written on failure")
	}
}

func TestRowCells(t *testing.T) {
	insufficient := domain.InsufficientBalance()
	row := Row{Asset: "USD", Issuer: "GISSUER", Balance: d("0"), USD: domain.Undetermined(), MaxTransferable: &insufficient}

	cells := row.cells()
	if cells[2] != 0.0 {
		t.Errorf("balance cell = %v, want 0", cells[2])
	}
	if cells[3] != domain.UndeterminedLabel {
		t.Errorf("usd cell = %v, want %s", cells[3], domain.UndeterminedLabel)
	}
	if cells[4] != domain.InsufficientBalanceLabel {
		t.Errorf("limit cell = %v, want %s", cells[4], domain.InsufficientBalanceLabel)
	}
}

func TestBuildSheetsData(t *testing.T) {
	limit := domain.Limit(d("118.49999"))
	report := Report{
		AccountID: "GACCOUNT",
		At:        time.Date(2026, 2, 24, 12, 30, 0, 0, time.UTC),
		Rows: []Row{
			{Asset: "XLM", Balance: d("120"), USD: domain.USD(d("12")), MaxTransferable: &limit},
		},
	}

	data := buildBalances(report)
	if len(data) != 2 || data[0][0] != "Asset" {
		t.Fatalf("balances data = %v", data)
	}
	if data[1][3] != 12.0 || data[1][4] != 118.49999 {
		t.Errorf("data row = %v", data[1])
	}

	history := buildHistoryRow(report)
	if history[0] != "24.02.2026 12:30" || history[2] != 12.0 || history[3] != 1.0 {
		t.Errorf("history row = %v", history)
	}
}
