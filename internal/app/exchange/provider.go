package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/light-bringer/pricing-service/internal/pkg/amount"
	"github.com/light-bringer/pricing-service/internal/pkg/httpclient"
)

// Fetcher returns USD->X rates, i.e. how many units of X one dollar buys.
type Fetcher interface {
	FetchUSDRates(ctx context.Context) (map[string]*big.Rat, time.Time, error)
}

// APIClient reads https://api.exchangerate-api.com/v4/latest/USD.
type APIClient struct {
	url  string
	http *httpclient.Client
}

func NewAPIClient(url string, http *httpclient.Client) *APIClient {
	return &APIClient{url: url, http: http}
}

type latestResponse struct {
	Base            string                     `json:"base"`
	TimeLastUpdated int64                      `json:"time_last_updated"`
	Rates           map[string]json.RawMessage `json:"rates"`
}

func (c *APIClient) FetchUSDRates(ctx context.Context) (map[string]*big.Rat, time.Time, error) {
	var resp latestResponse
	if err := c.http.GetJSON(ctx, c.url, &resp); err != nil {
		return nil, time.Time{}, fmt.Errorf("fetch exchange rates: %w", err)
	}
	if resp.Base != "" && resp.Base != "USD" {
		return nil, time.Time{}, fmt.Errorf("fetch exchange rates: unexpected base %q", resp.Base)
	}
	if len(resp.Rates) == 0 {
		return nil, time.Time{}, fmt.Errorf("fetch exchange rates: empty rate table")
	}

	rates := make(map[string]*big.Rat, len(resp.Rates))
	for code, raw := range resp.Rates {
		r, err := amount.Parse(raw)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("rate %s: %w", code, err)
		}
		rates[code] = r
	}

	var updated time.Time
	if resp.TimeLastUpdated > 0 {
		updated = time.Unix(resp.TimeLastUpdated, 0).UTC()
	}
	return rates, updated, nil
}
