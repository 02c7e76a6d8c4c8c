package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const pricesPath = "/FuelPriceCheck/v2/fuel/prices"

// requestTimestampLayout is the header format the FuelCheck API expects.
const requestTimestampLayout = "02/01/2006 03:04:05 PM"

// GetPrices fetches the current station and price feed for one state.
//
// A valid access token is fetched (or reused from cache) first; every data
// request carries a fresh transactionid so upstream request tracing works.
func (c *Client) GetPrices(ctx context.Context, state string) (*PricesResponse, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("states", state)

	headers := map[string]string{
		"authorization":    "Bearer " + token,
		"apikey":           c.apikey,
		"transactionid":    uuid.NewString(),
		"requesttimestamp": time.Now().UTC().Format(requestTimestampLayout),
	}

	var resp PricesResponse
	if err := c.get(ctx, pricesPath, query, headers, &resp); err != nil {
		return nil, fmt.Errorf("get prices for %s: %w", state, err)
	}

	return &resp, nil
}
