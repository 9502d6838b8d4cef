package horizon

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/domain"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/remote"
)

// FetchLatestTrade returns the most recent trade of asset (base) against XLM (counter),
// or nil when the pair has never traded.
func (c *Client) FetchLatestTrade(ctx context.Context, asset domain.AssetInfo) (*domain.TradeRecord, error) {
	if asset.IsNative() {
		return nil, fmt.Errorf("cannot query trades of native against itself")
	}

	params := url.Values{}
	params.Set("base_asset_type", string(asset.Type))
	params.Set("base_asset_code", asset.Code)
	params.Set("base_asset_issuer", asset.Issuer)
	params.Set("counter_asset_type", string(domain.AssetTypeNative))
	params.Set("limit", "1")
	params.Set("order", "desc")

	var page remote.Page[horizonTrade]
	if err := c.getJSON(ctx, "/trades?"+params.Encode(), &page); err != nil {
		return nil, fmt.Errorf("fetching latest trade for %s: %w", asset.Canonical(), err)
	}

	records := page.Records()
	if len(records) == 0 {
		return nil, nil
	}

	base, err := domain.ParseAmount(records[0].BaseAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: trade %s base amount: %w", remote.ErrNetworkFailure, records[0].ID, err)
	}
	counter, err := domain.ParseAmount(records[0].CounterAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: trade %s counter amount: %w", remote.ErrNetworkFailure, records[0].ID, err)
	}
	return &domain.TradeRecord{BaseAmount: base, CounterAmount: counter}, nil
}
