package services

import (
	"context"

	"github.com/sokoflow/fx_engine/internal/core/domain"
)

// SettlementSvcFacade executes quotes into transactions and retrieves the
// resulting records.
type SettlementSvcFacade interface {
	// ExecuteQuote settles a quote exactly once. Concurrent and repeated calls
	// with the same quote ID all return the same transaction; an expired,
	// unexecuted quote fails without side effects.
	ExecuteQuote(ctx context.Context, quoteID string) (*domain.Transaction, error)

	// GetTransaction retrieves a transaction by ID.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns up to limit transactions, most recent first.
	ListTransactions(ctx context.Context, limit int) ([]domain.Transaction, error)
}
