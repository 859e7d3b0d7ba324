package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sokoflow/fx_engine/internal/core/domain"
)

// ExecuteQuoteRequest defines the structure for executing a quote into a transaction.
// Repeating the request with the same quote ID is idempotent.
type ExecuteQuoteRequest struct {
	QuoteID string `json:"quoteID" binding:"required,uuid"`
}

// TransactionResponse defines the structure for API responses containing transaction details.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	QuoteID       string          `json:"quoteID"`
	FromCurrency  string          `json:"fromCurrency"`
	ToCurrency    string          `json:"toCurrency"`
	FromAmount    decimal.Decimal `json:"fromAmount"`
	ToAmount      decimal.Decimal `json:"toAmount"`
	AppliedRate   decimal.Decimal `json:"appliedRate"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		QuoteID:       txn.QuoteID,
		FromCurrency:  txn.FromCurrency,
		ToCurrency:    txn.ToCurrency,
		FromAmount:    txn.FromAmount,
		ToAmount:      txn.ToAmount,
		AppliedRate:   txn.AppliedRate,
		Status:        string(txn.Status),
		CreatedAt:     txn.CreatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain transactions to response DTOs.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
