package mapping

import (
	"github.com/sokoflow/fx_engine/internal/core/domain"
	"github.com/sokoflow/fx_engine/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		QuoteID:       d.QuoteID,
		FromCurrency:  d.FromCurrency,
		ToCurrency:    d.ToCurrency,
		FromAmount:    d.FromAmount,
		ToAmount:      d.ToAmount,
		AppliedRate:   d.AppliedRate,
		Status:        string(d.Status),
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		QuoteID:       m.QuoteID,
		FromCurrency:  m.FromCurrency,
		ToCurrency:    m.ToCurrency,
		FromAmount:    m.FromAmount,
		ToAmount:      m.ToAmount,
		AppliedRate:   m.AppliedRate,
		Status:        domain.TransactionStatus(m.Status),
		CreatedAt:     m.CreatedAt,
	}
}
