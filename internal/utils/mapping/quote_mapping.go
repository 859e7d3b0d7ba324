package mapping

import (
	"github.com/sokoflow/fx_engine/internal/core/domain"
	"github.com/sokoflow/fx_engine/internal/models"
)

// ToModelQuote converts a domain Quote to a model Quote
func ToModelQuote(d domain.Quote) models.Quote {
	return models.Quote{
		QuoteID:      d.QuoteID,
		FromCurrency: d.FromCurrency,
		ToCurrency:   d.ToCurrency,
		FromAmount:   d.FromAmount,
		ToAmount:     d.ToAmount,
		AppliedRate:  d.AppliedRate,
		CreatedAt:    d.CreatedAt,
		ExpiresAt:    d.ExpiresAt,
		Executed:     d.Executed,
		ExecutedAt:   d.ExecutedAt,
	}
}

// ToDomainQuote converts a model Quote to a domain Quote
func ToDomainQuote(m models.Quote) domain.Quote {
	return domain.Quote{
		QuoteID:      m.QuoteID,
		FromCurrency: m.FromCurrency,
		ToCurrency:   m.ToCurrency,
		FromAmount:   m.FromAmount,
		ToAmount:     m.ToAmount,
		AppliedRate:  m.AppliedRate,
		CreatedAt:    m.CreatedAt,
		ExpiresAt:    m.ExpiresAt,
		Executed:     m.Executed,
		ExecutedAt:   m.ExecutedAt,
	}
}
