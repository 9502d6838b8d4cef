package horizon

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/domain"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/remote"
)

// FetchAccount retrieves a Stellar account's details including balances.
// An unfunded account yields remote.ErrNotFound.
func (c *Client) FetchAccount(ctx context.Context, accountID string) (HorizonAccount, error) {
	var account HorizonAccount
	if err := c.getJSON(ctx, fmt.Sprintf("/accounts/%s", accountID), &account); err != nil {
		return HorizonAccount{}, fmt.Errorf("fetching account %s: %w", accountID, err)
	}
	return account, nil
}

// FetchBalances returns the account's balances converted to domain values.
func (c *Client) FetchBalances(ctx context.Context, accountID string) ([]domain.Balance, error) {
	account, err := c.FetchAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return ToBalances(account.Balances)
}

// ToBalances converts Horizon balance entries. A malformed amount is an upstream fault
// and is reported as remote.ErrNetworkFailure.
func ToBalances(raw []HorizonBalance) ([]domain.Balance, error) {
	var parseErr error
	balances := lo.FilterMap(raw, func(b HorizonBalance, _ int) (domain.Balance, bool) {
		if parseErr != nil {
			return domain.Balance{}, false
		}
		amt, err := domain.ParseAmount(b.Balance)
		if err != nil {
			parseErr = fmt.Errorf("%w: balance of %s: %w", remote.ErrNetworkFailure, assetOf(b).Canonical(), err)
			return domain.Balance{}, false
		}
		return domain.Balance{
			Asset:           assetOf(b),
			Amount:          amt,
			LiquidityPoolID: b.LiquidityPoolID,
		}, true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return balances, nil
}

func assetOf(b HorizonBalance) domain.AssetInfo {
	switch domain.AssetType(b.AssetType) {
	case domain.AssetTypeNative:
		return domain.NativeAsset()
	case domain.AssetTypePoolShare:
		return domain.AssetInfo{Type: domain.AssetTypePoolShare}
	default:
		return domain.AssetInfo{
			Code:   b.AssetCode,
			Issuer: b.AssetIssuer,
			Type:   domain.AssetType(b.AssetType),
		}
	}
}
