package ratefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sokoflow/fx_engine/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client fetches market rates from an external HTTP feed. The feed returns a
// JSON document of the form {"base": "USD", "rates": {"KES": 129.5, ...}};
// rate values may arrive as numbers or strings.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a feed client for the given base URL. The base currency code is
// appended to the URL per request.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

var _ ports.RateFeedProvider = (*Client)(nil)

// FetchLatest returns target currency code -> rate for the given base.
func (c *Client) FetchLatest(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+baseCurrency, nil)
	if err != nil {
		return nil, fmt.Errorf("rate feed: building request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate feed: unexpected status %d for base %s", resp.StatusCode, baseCurrency)
	}

	var body struct {
		Rates map[string]any `json:"rates"`
	}
	decoder := json.NewDecoder(resp.Body)
	// Keep numbers as strings so large rates survive without float rounding.
	decoder.UseNumber()
	if err := decoder.Decode(&body); err != nil {
		return nil, fmt.Errorf("rate feed: decoding response: %w", err)
	}
	if body.Rates == nil {
		return nil, fmt.Errorf("rate feed: response for base %s carries no rates", baseCurrency)
	}

	rates := make(map[string]decimal.Decimal, len(body.Rates))
	for code, value := range body.Rates {
		var raw string
		switch v := value.(type) {
		case json.Number:
			raw = v.String()
		case string:
			raw = v
		default:
			return nil, fmt.Errorf("rate feed: unexpected rate value %v for %s", value, code)
		}
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("rate feed: bad rate value %q for %s: %w", raw, code, err)
		}
		rates[code] = rate
	}

	return rates, nil
}
