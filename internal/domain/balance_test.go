package domain

import "testing"

func TestBalanceMatches(t *testing.T) {
	usd := Balance{Asset: AssetInfo{Code: "USD", Issuer: "GISSUER", Type: AssetTypeCreditAlphanum4}}
	native := Balance{Asset: NativeAsset()}

	tests := []struct {
		name    string
		balance Balance
		target  AssetInfo
		want    bool
	}{
		{"native matches native", native, NativeAsset(), true},
		{"credit does not match native", usd, NativeAsset(), false},
		{"code only", usd, AssetInfo{Code: "USD", Type: AssetTypeCreditAlphanum4}, true},
		{"empty code never matches", Balance{Asset: AssetInfo{Type: AssetTypePoolShare}}, AssetInfo{Type: AssetTypeCreditAlphanum4}, false},
		{"code and issuer", usd, AssetInfo{Code: "USD", Issuer: "GISSUER", Type: AssetTypeCreditAlphanum4}, true},
		{"issuer mismatch", usd, AssetInfo{Code: "USD", Issuer: "GOTHER", Type: AssetTypeCreditAlphanum4}, false},
		{"code mismatch", usd, AssetInfo{Code: "EUR", Type: AssetTypeCreditAlphanum4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.balance.Matches(tt.target); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBalanceHasTrustline(t *testing.T) {
	if (Balance{Asset: NativeAsset()}).HasTrustline() {
		t.Error("native balance must not count as trustline")
	}
	if (Balance{Asset: AssetInfo{Type: AssetTypePoolShare}, LiquidityPoolID: "pool"}).HasTrustline() {
		t.Error("pool share without code must not count as trustline")
	}
	if !(Balance{Asset: AssetInfo{Code: "USD", Issuer: "G", Type: AssetTypeCreditAlphanum4}}).HasTrustline() {
		t.Error("credit balance must count as trustline")
	}
}
