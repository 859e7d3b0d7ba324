package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/sokoflow/fx_engine/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx repositories against one connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExchangeRateRepo: NewPgxExchangeRateRepository(dbPool),
		QuoteRepo:        NewPgxQuoteRepository(dbPool),
		TransactionRepo:  NewPgxTransactionRepository(dbPool),
	}
}
