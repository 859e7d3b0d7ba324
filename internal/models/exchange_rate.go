package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the persistence model for a directed currency-pair rate.
// Note: Rate uses github.com/shopspring/decimal to keep exact precision.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Primary Key (UUID)
	BaseCurrency   string          `json:"baseCurrency"`   // 3-letter code
	TargetCurrency string          `json:"targetCurrency"` // 3-letter code
	Rate           decimal.Decimal `json:"rate"`           // NUMERIC(18,8), > 0
	UpdatedAt      time.Time       `json:"updatedAt"`
}
