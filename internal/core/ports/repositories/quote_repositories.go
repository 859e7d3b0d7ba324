package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sokoflow/fx_engine/internal/core/domain"
)

// QuoteReader defines read operations for quote data
type QuoteReader interface {
	// FindQuoteByID retrieves a quote by its unique identifier.
	FindQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error)

	// FindQuoteByIDForUpdate retrieves a quote and locks its row until the
	// surrounding transaction ends. Must be called within a transaction; the
	// lock scope is the single quote row, so unrelated quotes stay parallel.
	FindQuoteByIDForUpdate(ctx context.Context, tx pgx.Tx, quoteID string) (*domain.Quote, error)
}

// QuoteWriter defines write operations for quote data
type QuoteWriter interface {
	// SaveQuote persists a newly generated quote.
	SaveQuote(ctx context.Context, quote domain.Quote) error

	// MarkQuoteExecuted flips the quote to executed within the given
	// transaction. The caller must hold the row lock and commit this together
	// with the transaction insert.
	MarkQuoteExecuted(ctx context.Context, tx pgx.Tx, quoteID string, executedAt time.Time) error
}

// QuoteRepositoryFacade combines all quote-related repository interfaces
type QuoteRepositoryFacade interface {
	QuoteReader
	QuoteWriter
}

// QuoteRepositoryWithTx extends QuoteRepositoryFacade with transaction capabilities
type QuoteRepositoryWithTx interface {
	QuoteRepositoryFacade
	TransactionManager
}
