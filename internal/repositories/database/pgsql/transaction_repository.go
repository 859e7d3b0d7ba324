package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sokoflow/fx_engine/internal/apperrors"
	"github.com/sokoflow/fx_engine/internal/core/domain"
	"github.com/sokoflow/fx_engine/internal/models"
	"github.com/sokoflow/fx_engine/internal/utils/mapping"
)

const transactionColumns = `transaction_id, quote_id, from_currency, to_currency, from_amount, to_amount, applied_rate, status, created_at`

// PgxTransactionRepository implements the transaction repository ports using pgxpool.
// Transactions are written once, inside the settlement database transaction,
// and never updated. The UNIQUE constraint on quote_id backs the at-most-one
// transaction per quote invariant at the storage layer.
type PgxTransactionRepository struct {
	BaseRepository
}

// NewPgxTransactionRepository creates a new PgxTransactionRepository.
func NewPgxTransactionRepository(db *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveTransaction inserts a transaction within the given database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	modelTxn := mapping.ToModelTransaction(txn)

	_, err := tx.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		modelTxn.TransactionID, modelTxn.QuoteID, modelTxn.FromCurrency, modelTxn.ToCurrency,
		modelTxn.FromAmount, modelTxn.ToAmount, modelTxn.AppliedRate,
		modelTxn.Status, modelTxn.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save transaction", err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its unique identifier.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1;`, transactionID)
	return scanTransaction(row, "transaction with ID "+transactionID+" not found")
}

// FindTransactionByQuoteID retrieves the transaction linked to a quote, if any.
func (r *PgxTransactionRepository) FindTransactionByQuoteID(ctx context.Context, quoteID string) (*domain.Transaction, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE quote_id = $1;`, quoteID)
	return scanTransaction(row, "no transaction for quote "+quoteID)
}

// ListTransactions retrieves up to limit transactions, most recent first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		ORDER BY created_at DESC
		LIMIT $1;`, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list transactions", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var modelTxn models.Transaction
		err := rows.Scan(
			&modelTxn.TransactionID, &modelTxn.QuoteID, &modelTxn.FromCurrency, &modelTxn.ToCurrency,
			&modelTxn.FromAmount, &modelTxn.ToAmount, &modelTxn.AppliedRate,
			&modelTxn.Status, &modelTxn.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(modelTxn))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transactions", err)
	}

	return txns, nil
}

func scanTransaction(row pgx.Row, notFoundMsg string) (*domain.Transaction, error) {
	var modelTxn models.Transaction
	err := row.Scan(
		&modelTxn.TransactionID, &modelTxn.QuoteID, &modelTxn.FromCurrency, &modelTxn.ToCurrency,
		&modelTxn.FromAmount, &modelTxn.ToAmount, &modelTxn.AppliedRate,
		&modelTxn.Status, &modelTxn.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(notFoundMsg)
		}
		return nil, apperrors.NewAppError(500, "failed to scan transaction", err)
	}

	domainTxn := mapping.ToDomainTransaction(modelTxn)
	return &domainTxn, nil
}
