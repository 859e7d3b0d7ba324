package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateFeedProvider is the pluggable external market-rate source. Implementations
// fetch the latest rates keyed by a base currency; the rate service decides
// which of them to persist.
type RateFeedProvider interface {
	// FetchLatest returns target currency code -> rate for the given base.
	FetchLatest(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error)
}
