package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sokoflow/fx_engine/internal/core/domain"
)

// TransactionReader defines read operations for settled transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByQuoteID retrieves the transaction linked to a quote,
	// if any. At most one can exist.
	FindTransactionByQuoteID(ctx context.Context, quoteID string) (*domain.Transaction, error)

	// ListTransactions retrieves up to limit transactions, most recent first.
	ListTransactions(ctx context.Context, limit int) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for settled transaction data
type TransactionWriter interface {
	// SaveTransaction inserts a transaction within the given database
	// transaction. It must commit atomically with the quote's executed flag.
	SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
