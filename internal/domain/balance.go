package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrAssetNotHeld is returned when a query names an asset the account has no balance entry for.
var ErrAssetNotHeld = errors.New("asset not held by account")

// Balance is a single balance entry of a Stellar account.
type Balance struct {
	Asset           AssetInfo       `json:"asset"`
	Amount          decimal.Decimal `json:"balance"`
	LiquidityPoolID string          `json:"liquidityPoolId,omitempty"`
}

// HasTrustline reports whether the entry is backed by a trustline, i.e. carries an asset code.
func (b Balance) HasTrustline() bool {
	return b.Asset.Code != "" && !b.Asset.IsNative()
}

// Matches reports whether the balance belongs to the given asset. An empty issuer
// on a credit asset matches on code alone.
func (b Balance) Matches(asset AssetInfo) bool {
	if asset.IsNative() {
		return b.Asset.IsNative()
	}
	if asset.Code == "" || b.Asset.IsNative() || b.Asset.Code != asset.Code {
		return false
	}
	return asset.Issuer == "" || b.Asset.Issuer == asset.Issuer
}

// TradeRecord is the most recent trade of an asset against the native currency.
// CounterAmount/BaseAmount is the asset price in native units.
type TradeRecord struct {
	BaseAmount    decimal.Decimal `json:"baseAmount"`
	CounterAmount decimal.Decimal `json:"counterAmount"`
}

// EnrichedBalance is a balance entry with its USD valuation.
type EnrichedBalance struct {
	Balance
	USD USDValue `json:"usdPrice"`
}
