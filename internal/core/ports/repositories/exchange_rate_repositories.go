package repositories

import (
	"context"

	"github.com/sokoflow/fx_engine/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindExchangeRate retrieves the stored rate for the directed pair
	// base -> target. It performs no inverse or cross-rate fallback; rate
	// resolution lives in the rate service.
	FindExchangeRate(ctx context.Context, baseCurrency, targetCurrency string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves all stored exchange rates.
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate inserts or overwrites the directed pair, always
	// advancing updated_at. Concurrent saves of the same pair serialize with
	// last-committed-write-wins; saves of different pairs do not block each other.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
