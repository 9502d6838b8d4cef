package price

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/domain"
)

var usd = domain.AssetInfo{Code: "USD", Issuer: "GISSUER", Type: domain.AssetTypeCreditAlphanum4}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDeriveUSD(t *testing.T) {
	tests := []struct {
		name    string
		balance domain.Balance
		trade   *domain.TradeRecord
		native  decimal.Decimal
		want    string
	}{
		{
			name:    "native",
			balance: domain.Balance{Asset: domain.NativeAsset(), Amount: d("120")},
			native:  d("0.10"),
			want:    "12.00",
		},
		{
			name:    "native ignores trade",
			balance: domain.Balance{Asset: domain.NativeAsset(), Amount: d("120")},
			trade:   &domain.TradeRecord{BaseAmount: d("1"), CounterAmount: d("1000")},
			native:  d("0.10"),
			want:    "12.00",
		},
		{
			name:    "credit via trade",
			balance: domain.Balance{Asset: usd, Amount: d("50")},
			trade:   &domain.TradeRecord{BaseAmount: d("2"), CounterAmount: d("1")},
			native:  d("0.10"),
			want:    "2.50",
		},
		{
			name:    "rounds half up to cents",
			balance: domain.Balance{Asset: usd, Amount: d("1")},
			trade:   &domain.TradeRecord{BaseAmount: d("1"), CounterAmount: d("0.2345")},
			native:  d("10"),
			want:    "2.35",
		},
		{
			name:    "no trade",
			balance: domain.Balance{Asset: usd, Amount: d("50")},
			native:  d("0.10"),
			want:    domain.UndeterminedLabel,
		},
		{
			name:    "zero base amount",
			balance: domain.Balance{Asset: usd, Amount: d("50")},
			trade:   &domain.TradeRecord{BaseAmount: decimal.Zero, CounterAmount: d("1")},
			native:  d("0.10"),
			want:    domain.UndeterminedLabel,
		},
		{
			name:    "pool share",
			balance: domain.Balance{Asset: domain.AssetInfo{Type: domain.AssetTypePoolShare}, Amount: d("5"), LiquidityPoolID: "pool"},
			trade:   &domain.TradeRecord{BaseAmount: d("1"), CounterAmount: d("1")},
			native:  d("0.10"),
			want:    domain.UndeterminedLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveUSD(tt.balance, tt.trade, tt.native)
			if got.String() != tt.want {
				t.Errorf("DeriveUSD() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNeedsTrade(t *testing.T) {
	if NeedsTrade(domain.Balance{Asset: domain.NativeAsset()}) {
		t.Error("native must not need a trade")
	}
	if !NeedsTrade(domain.Balance{Asset: usd}) {
		t.Error("credit asset needs a trade")
	}
	if NeedsTrade(domain.Balance{Asset: domain.AssetInfo{Type: domain.AssetTypePoolShare}}) {
		t.Error("pool share must not need a trade")
	}
}
