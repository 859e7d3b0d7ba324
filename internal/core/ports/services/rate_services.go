package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sokoflow/fx_engine/internal/core/domain"
	"github.com/sokoflow/fx_engine/internal/dto"
)

// RateResolverSvc resolves an effective exchange rate between two currencies.
type RateResolverSvc interface {
	// Resolve returns the effective rate from -> to, trying the direct pair,
	// then the inverse pair, then a single-hop cross rate via the hub currency.
	Resolve(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error)
}

// RateStoreSvc manages the stored rate set.
type RateStoreSvc interface {
	// UpsertRate inserts or overwrites the directed pair.
	UpsertRate(ctx context.Context, req dto.UpsertRateRequest) (*domain.ExchangeRate, error)

	// ListRates returns all stored rates.
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)

	// RefreshRates pulls current rates for the given base currency (hub
	// currency when empty) from the external feed and upserts every supported
	// target.
	RefreshRates(ctx context.Context, baseCurrency string) (*dto.RefreshRatesResponse, error)

	// IsRateStale reports whether the stored direct rate for the pair is older
	// than the configured staleness threshold. A missing rate is stale.
	IsRateStale(ctx context.Context, fromCurrency, toCurrency string) (bool, error)

	// SeedRates loads an initial rate grid, for development and tests.
	SeedRates(ctx context.Context) error
}

// RateSvcFacade combines rate resolution and rate store management.
type RateSvcFacade interface {
	RateResolverSvc
	RateStoreSvc
}
