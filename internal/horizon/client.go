package horizon

import (
	"context"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/remote"
)

// Client is a read-only client for the Stellar Horizon API.
type Client struct {
	api *remote.Client
}

// NewClient creates a new Horizon API client.
func NewClient(baseURL string, opts ...remote.Option) *Client {
	return &Client{api: remote.NewClient("horizon", baseURL, opts...)}
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	return c.api.GetJSON(ctx, path, dest)
}
