// Package price derives USD valuations of account balances from the native
// asset's USD price and the latest trade of each asset against native.
package price

import (
	"github.com/shopspring/decimal"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/domain"
)

// DeriveUSD values a balance in USD.
//
// Native balances are balance * nativeUSD. Other assets are priced through
// their latest trade against native: counter/base * nativeUSD * balance.
// Without a trade, or with a zero base amount, the value is Undetermined.
func DeriveUSD(b domain.Balance, trade *domain.TradeRecord, nativeUSD decimal.Decimal) domain.USDValue {
	if b.Asset.IsNative() {
		return domain.USD(b.Amount.Mul(nativeUSD))
	}
	if b.Asset.IsPoolShare() {
		return domain.Undetermined()
	}
	rate, ok := NativeRate(trade)
	if !ok {
		return domain.Undetermined()
	}
	return domain.USD(rate.Mul(nativeUSD).Mul(b.Amount))
}

// NativeRate returns the price of one asset unit in native units implied by trade.
func NativeRate(trade *domain.TradeRecord) (decimal.Decimal, bool) {
	if trade == nil || !trade.BaseAmount.IsPositive() {
		return decimal.Zero, false
	}
	return trade.CounterAmount.Div(trade.BaseAmount), true
}

// NeedsTrade reports whether valuing b requires a trade lookup.
func NeedsTrade(b domain.Balance) bool {
	return !b.Asset.IsNative() && !b.Asset.IsPoolShare()
}
