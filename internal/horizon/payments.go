package horizon

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Nathanofzion/stellar-rails-wallet/internal/remote"
)

// DefaultPaymentsLimit is the page size of the payments history.
const DefaultPaymentsLimit = 10

// PaymentsQuery selects one page of an account's payments.
type PaymentsQuery struct {
	Cursor string
	Order  string
	Limit  int
}

// FetchPayments returns one page of payments for accountID. Order defaults to desc.
func (c *Client) FetchPayments(ctx context.Context, accountID string, q PaymentsQuery) (remote.Page[Payment], error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPaymentsLimit
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	if q.Cursor != "" {
		params.Set("cursor", q.Cursor)
	}
	if q.Order == "asc" {
		params.Set("order", "asc")
	} else {
		params.Set("order", "desc")
	}

	var page remote.Page[Payment]
	path := fmt.Sprintf("/accounts/%s/payments?%s", accountID, params.Encode())
	if err := c.getJSON(ctx, path, &page); err != nil {
		return remote.Page[Payment]{}, fmt.Errorf("fetching payments for %s: %w", accountID, err)
	}
	return page, nil
}
