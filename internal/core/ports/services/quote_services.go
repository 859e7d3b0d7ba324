package services

import (
	"context"

	"github.com/sokoflow/fx_engine/internal/core/domain"
	"github.com/sokoflow/fx_engine/internal/dto"
)

// QuoteSvcFacade produces and retrieves FX quotes.
type QuoteSvcFacade interface {
	// GenerateQuote resolves a rate, applies the buy spread and persists a new
	// quote with the configured validity window. Re-quoting a pair never
	// mutates a prior quote.
	GenerateQuote(ctx context.Context, req dto.CreateQuoteRequest) (*domain.Quote, error)

	// GetQuote retrieves a quote by ID.
	GetQuote(ctx context.Context, quoteID string) (*domain.Quote, error)
}
