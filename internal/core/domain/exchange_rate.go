package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate for a directed currency pair.
// Pairs are directional: storing USD->KES does not imply KES->USD.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Primary Key (UUID)
	BaseCurrency   string          `json:"baseCurrency"`   // e.g. "USD"
	TargetCurrency string          `json:"targetCurrency"` // e.g. "KES"
	Rate           decimal.Decimal `json:"rate"`           // Always > 0; stored at scale 8
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// IsStale reports whether the rate is older than the given threshold at the
// given instant.
func (r ExchangeRate) IsStale(now time.Time, threshold time.Duration) bool {
	return r.UpdatedAt.Before(now.Add(-threshold))
}
