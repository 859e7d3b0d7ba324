package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a time-bounded, spread-adjusted conversion offer. A quote is created
// once by the quote service and mutated exactly once, when the settlement
// service marks it executed. Quotes are never deleted (audit retention).
type Quote struct {
	QuoteID      string          `json:"quoteID"` // Primary Key (UUID)
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	FromAmount   decimal.Decimal `json:"fromAmount"`  // > 0, currency scale (2)
	ToAmount     decimal.Decimal `json:"toAmount"`    // round(fromAmount * appliedRate, 2)
	AppliedRate  decimal.Decimal `json:"appliedRate"` // customer-facing rate, spread included
	CreatedAt    time.Time       `json:"createdAt"`
	ExpiresAt    time.Time       `json:"expiresAt"`
	Executed     bool            `json:"executed"`
	ExecutedAt   *time.Time      `json:"executedAt,omitempty"`
}

// IsExpired reports whether the quote's validity window has elapsed at the
// given instant. Expiry is evaluated lazily; it is never written back.
func (q Quote) IsExpired(now time.Time) bool {
	return !now.Before(q.ExpiresAt)
}
