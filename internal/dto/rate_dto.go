package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sokoflow/fx_engine/internal/core/domain"
)

// UpsertRateRequest defines the structure for manually setting an exchange rate.
type UpsertRateRequest struct {
	BaseCurrency   string          `json:"baseCurrency" binding:"required,currencycode"`
	TargetCurrency string          `json:"targetCurrency" binding:"required,currencycode"`
	Rate           decimal.Decimal `json:"rate" binding:"required"` // must be > 0, checked in service
}

// RefreshRatesRequest defines the optional body for a feed refresh.
type RefreshRatesRequest struct {
	BaseCurrency string `json:"baseCurrency" binding:"omitempty,currencycode"`
}

// RefreshRatesResponse reports the outcome of a feed refresh.
type RefreshRatesResponse struct {
	BaseCurrency string    `json:"baseCurrency"`
	RatesUpdated int       `json:"ratesUpdated"`
	Timestamp    time.Time `json:"timestamp"`
}

// ExchangeRateResponse defines the structure for API responses containing rate details.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	BaseCurrency   string          `json:"baseCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		BaseCurrency:   rate.BaseCurrency,
		TargetCurrency: rate.TargetCurrency,
		Rate:           rate.Rate,
		UpdatedAt:      rate.UpdatedAt,
	}
}

// ToListExchangeRateResponse converts a slice of domain rates to response DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
