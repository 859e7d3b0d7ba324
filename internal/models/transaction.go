package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persistence model for an executed FX transaction.
// Rows are immutable once written; the quote_id column carries a UNIQUE
// constraint so the database itself enforces at most one transaction per quote.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	QuoteID       string          `json:"quoteID"`       // FK -> quotes.quote_id, UNIQUE
	FromCurrency  string          `json:"fromCurrency"`
	ToCurrency    string          `json:"toCurrency"`
	FromAmount    decimal.Decimal `json:"fromAmount"`  // NUMERIC(18,2)
	ToAmount      decimal.Decimal `json:"toAmount"`    // NUMERIC(18,2)
	AppliedRate   decimal.Decimal `json:"appliedRate"` // NUMERIC(18,8)
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}
