// Package reserve computes the minimum balance an account must keep and the
// largest amount of an asset it may transfer.
package reserve

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/domain"
)

// TrustlineCount counts balance entries backed by a trustline.
func TrustlineCount(balances []domain.Balance) int {
	return lo.CountBy(balances, domain.Balance.HasTrustline)
}

// MinRequired is the native amount that must stay on the account:
// fee + base reserve + per-trustline reserve * trustlines.
func MinRequired(balances []domain.Balance, params domain.ReserveParams) decimal.Decimal {
	trustlines := decimal.NewFromInt(int64(TrustlineCount(balances)))
	return params.TransactionFee.
		Add(params.MinBaseReserve).
		Add(params.PerTrustline.Mul(trustlines))
}

// NativeBalance returns the native entry of balances.
func NativeBalance(balances []domain.Balance) (domain.Balance, bool) {
	return lo.Find(balances, func(b domain.Balance) bool { return b.Asset.IsNative() })
}

// FindBalance returns the entry matching target. The first match wins.
func FindBalance(balances []domain.Balance, target domain.AssetInfo) (domain.Balance, bool) {
	return lo.Find(balances, func(b domain.Balance) bool { return b.Matches(target) })
}

// MaxTransferable returns how much of target may leave the account.
//
// For the native asset this is the native balance minus MinRequired, rounded
// to 5 places; a surplus that rounds to zero is InsufficientBalance. For any other asset it is the whole asset balance, provided the
// native balance still covers MinRequired. Targets the account does not hold
// yield domain.ErrAssetNotHeld.
func MaxTransferable(balances []domain.Balance, target domain.AssetInfo, params domain.ReserveParams) (domain.TransferLimit, error) {
	entry, ok := FindBalance(balances, target)
	if !ok {
		return domain.InsufficientBalance(), fmt.Errorf("%w: %s", domain.ErrAssetNotHeld, target.Canonical())
	}

	minRequired := MinRequired(balances, params)

	if target.IsNative() {
		available := domain.RoundNative(entry.Amount.Sub(minRequired))
		if !available.IsPositive() {
			return domain.InsufficientBalance(), nil
		}
		return domain.Limit(available), nil
	}

	native, ok := NativeBalance(balances)
	if !ok || !native.Amount.GreaterThan(minRequired) || !entry.Amount.IsPositive() {
		return domain.InsufficientBalance(), nil
	}
	return domain.Limit(entry.Amount), nil
}
