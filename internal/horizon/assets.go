package horizon

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/remote"
)

// DefaultAssetsLimit is the page size of the asset browser.
const DefaultAssetsLimit = 20

// AssetsQuery selects one page of the ledger's asset list.
type AssetsQuery struct {
	Cursor string
	Code   string
	Issuer string
	Order  string
	Limit  int
}

// FetchAssets returns one page of assets. Order is only sent when it is asc or desc.
func (c *Client) FetchAssets(ctx context.Context, q AssetsQuery) (remote.Page[AssetRecord], error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultAssetsLimit
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	if q.Cursor != "" {
		params.Set("cursor", q.Cursor)
	}
	if q.Code != "" {
		params.Set("asset_code", q.Code)
	}
	if q.Issuer != "" {
		params.Set("asset_issuer", q.Issuer)
	}
	if q.Order == "asc" || q.Order == "desc" {
		params.Set("order", q.Order)
	}

	var page remote.Page[AssetRecord]
	if err := c.getJSON(ctx, "/assets?"+params.Encode(), &page); err != nil {
		return remote.Page[AssetRecord]{}, fmt.Errorf("fetching assets: %w", err)
	}
	return page, nil
}
