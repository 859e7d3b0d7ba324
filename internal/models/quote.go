package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the persistence model for an FX quote.
type Quote struct {
	QuoteID      string          `json:"quoteID"` // Primary Key (UUID)
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	FromAmount   decimal.Decimal `json:"fromAmount"`  // NUMERIC(18,2)
	ToAmount     decimal.Decimal `json:"toAmount"`    // NUMERIC(18,2)
	AppliedRate  decimal.Decimal `json:"appliedRate"` // NUMERIC(18,8)
	CreatedAt    time.Time       `json:"createdAt"`
	ExpiresAt    time.Time       `json:"expiresAt"`
	Executed     bool            `json:"executed"`
	ExecutedAt   *time.Time      `json:"executedAt"` // NULL until executed
}
