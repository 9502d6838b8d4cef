// Package export writes an account's valued balances to spreadsheets.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/domain"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/wallet"
)

// Header is the column layout shared by every writer.
var Header = []string{"Asset", "Issuer", "Balance", "USD", "Max transferable"}

// Row is one balance line of an export.
type Row struct {
	Asset           string
	Issuer          string
	Balance         decimal.Decimal
	USD             domain.USDValue
	MaxTransferable *domain.TransferLimit // nil for entries that cannot be sent, e.g. pool shares
}

// Report is the full content of one export run.
type Report struct {
	AccountID string
	At        time.Time
	Rows      []Row
}

// TotalUSD sums the determined USD values.
func (r Report) TotalUSD() decimal.Decimal {
	return lo.Reduce(r.Rows, func(acc decimal.Decimal, row Row, _ int) decimal.Decimal {
		if v, ok := row.USD.Amount(); ok {
			return acc.Add(v)
		}
		return acc
	}, decimal.Zero)
}

// SheetWriter writes a report to a spreadsheet destination.
type SheetWriter interface {
	Write(ctx context.Context, report Report) error
}

// BalanceService is the subset of wallet.Service the exporter uses.
type BalanceService interface {
	RefreshBalances(ctx context.Context, sess wallet.Session) (wallet.Session, []domain.EnrichedBalance, error)
	MaxTransferable(sess wallet.Session, asset domain.AssetInfo) (domain.TransferLimit, error)
}

// Service builds balance reports and delegates writing to a SheetWriter.
type Service struct {
	wallet BalanceService
	writer SheetWriter
	now    func() time.Time
}

// NewService creates a new export Service. writer may be nil when only Build is used.
func NewService(w BalanceService, writer SheetWriter) *Service {
	return &Service{wallet: w, writer: writer, now: time.Now}
}

// Build fetches and values the account balances and computes each transfer limit.
func (s *Service) Build(ctx context.Context, accountID string) (Report, error) {
	sess, balances, err := s.wallet.RefreshBalances(ctx, wallet.NewSession(accountID))
	if err != nil {
		return Report{}, fmt.Errorf("refreshing balances of %s: %w", accountID, err)
	}

	rows := make([]Row, 0, len(balances))
	for _, b := range balances {
		row := Row{
			Asset:   assetName(b.Balance),
			Issuer:  b.Asset.Issuer,
			Balance: b.Amount,
			USD:     b.USD,
		}
		if !b.Asset.IsPoolShare() {
			limit, err := s.wallet.MaxTransferable(sess, b.Asset)
			if err != nil {
				return Report{}, fmt.Errorf("computing limit of %s: %w", b.Asset.Canonical(), err)
			}
			row.MaxTransferable = &limit
		}
		rows = append(rows, row)
	}

	return Report{AccountID: accountID, At: s.now().UTC(), Rows: rows}, nil
}

// Export builds the report for accountID and writes it.
// Implements worker.BalanceExporter.
func (s *Service) Export(ctx context.Context, accountID string) error {
	if s.writer == nil {
		return fmt.Errorf("export of %s: no writer configured", accountID)
	}
	report, err := s.Build(ctx, accountID)
	if err != nil {
		return err
	}
	if err := s.writer.Write(ctx, report); err != nil {
		return fmt.Errorf("writing export of %s: %w", accountID, err)
	}
	return nil
}

func assetName(b domain.Balance) string {
	switch {
	case b.Asset.IsNative():
		return domain.NativeCode
	case b.Asset.IsPoolShare():
		return "pool:" + b.LiquidityPoolID
	default:
		return b.Asset.Code
	}
}

// cells renders a row for spreadsheet writers: numbers as float64, sentinel
// values as their labels.
func (r Row) cells() []any {
	var usd any = domain.UndeterminedLabel
	if v, ok := r.USD.Amount(); ok {
		usd = toFloat(v)
	}

	var limit any = ""
	if r.MaxTransferable != nil {
		if v, ok := r.MaxTransferable.Amount(); ok {
			limit = toFloat(v)
		} else {
			limit = domain.InsufficientBalanceLabel
		}
	}

	return []any{r.Asset, r.Issuer, toFloat(r.Balance), usd, limit}
}

func headerCells() []any {
	return lo.Map(Header, func(h string, _ int) any { return h })
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
