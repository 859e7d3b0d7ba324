package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the settlement status of an executed transaction.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
)

// Transaction is the immutable record of an executed quote. At most one
// transaction ever exists per quote; that is the central correctness property
// of the settlement ledger.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (UUID)
	QuoteID       string            `json:"quoteID"`       // FK -> Quote.quoteID, unique
	FromCurrency  string            `json:"fromCurrency"`
	ToCurrency    string            `json:"toCurrency"`
	FromAmount    decimal.Decimal   `json:"fromAmount"`
	ToAmount      decimal.Decimal   `json:"toAmount"`
	AppliedRate   decimal.Decimal   `json:"appliedRate"`
	Status        TransactionStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
}
