package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sokoflow/fx_engine/internal/core/domain"
)

// CreateQuoteRequest defines the structure for requesting a new FX quote.
type CreateQuoteRequest struct {
	FromCurrency string          `json:"fromCurrency" binding:"required,currencycode"`
	ToCurrency   string          `json:"toCurrency" binding:"required,currencycode"`
	Amount       decimal.Decimal `json:"amount" binding:"required"` // must be > 0, checked in service
}

// QuoteResponse defines the structure for API responses containing quote details.
type QuoteResponse struct {
	QuoteID      string          `json:"quoteID"`
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	FromAmount   decimal.Decimal `json:"fromAmount"`
	ToAmount     decimal.Decimal `json:"toAmount"`
	AppliedRate  decimal.Decimal `json:"appliedRate"`
	CreatedAt    time.Time       `json:"createdAt"`
	ExpiresAt    time.Time       `json:"expiresAt"`
	Executed     bool            `json:"executed"`
	ExecutedAt   *time.Time      `json:"executedAt,omitempty"`
}

// ToQuoteResponse converts a domain.Quote to QuoteResponse DTO
func ToQuoteResponse(quote *domain.Quote) QuoteResponse {
	return QuoteResponse{
		QuoteID:      quote.QuoteID,
		FromCurrency: quote.FromCurrency,
		ToCurrency:   quote.ToCurrency,
		FromAmount:   quote.FromAmount,
		ToAmount:     quote.ToAmount,
		AppliedRate:  quote.AppliedRate,
		CreatedAt:    quote.CreatedAt,
		ExpiresAt:    quote.ExpiresAt,
		Executed:     quote.Executed,
		ExecutedAt:   quote.ExecutedAt,
	}
}
