package external

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/domain"
	"github.com/Nathanofzion/stellar-rails-wallet/internal/remote"
)

// DefaultSymbol is the ticker id of the native asset.
const DefaultSymbol = "stellar"

type tickerEntry struct {
	ID       string `json:"id"`
	Symbol   string `json:"symbol"`
	PriceUSD string `json:"price_usd"`
}

// TickerClient fetches the native asset USD price from a CoinMarketCap-style ticker API.
type TickerClient struct {
	api    *remote.Client
	symbol string
}

// NewTickerClient creates a ticker client rooted at baseURL.
func NewTickerClient(baseURL, symbol string, opts ...remote.Option) *TickerClient {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return &TickerClient{
		api:    remote.NewClient("ticker", baseURL, opts...),
		symbol: symbol,
	}
}

// FetchNativeUSDPrice returns the current USD price of one native unit.
func (c *TickerClient) FetchNativeUSDPrice(ctx context.Context) (decimal.Decimal, error) {
	var entries []tickerEntry
	if err := c.api.GetJSON(ctx, "/ticker/"+c.symbol, &entries); err != nil {
		return decimal.Zero, fmt.Errorf("fetching %s ticker: %w", c.symbol, err)
	}
	if len(entries) == 0 {
		return decimal.Zero, fmt.Errorf("%w: empty %s ticker response", remote.ErrNetworkFailure, c.symbol)
	}

	price, err := domain.ParseAmount(entries[0].PriceUSD)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s ticker price: %w", remote.ErrNetworkFailure, c.symbol, err)
	}
	return price, nil
}
