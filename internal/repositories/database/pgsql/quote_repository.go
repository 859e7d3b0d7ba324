package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sokoflow/fx_engine/internal/apperrors"
	"github.com/sokoflow/fx_engine/internal/core/domain"
	"github.com/sokoflow/fx_engine/internal/models"
	"github.com/sokoflow/fx_engine/internal/utils/mapping"
)

const quoteColumns = `quote_id, from_currency, to_currency, from_amount, to_amount, applied_rate, created_at, expires_at, executed, executed_at`

// PgxQuoteRepository implements the quote repository ports using pgxpool.
type PgxQuoteRepository struct {
	BaseRepository
}

// NewPgxQuoteRepository creates a new PgxQuoteRepository.
func NewPgxQuoteRepository(db *pgxpool.Pool) *PgxQuoteRepository {
	return &PgxQuoteRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveQuote persists a newly generated quote.
func (r *PgxQuoteRepository) SaveQuote(ctx context.Context, quote domain.Quote) error {
	modelQuote := mapping.ToModelQuote(quote)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO quotes (`+quoteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		modelQuote.QuoteID, modelQuote.FromCurrency, modelQuote.ToCurrency,
		modelQuote.FromAmount, modelQuote.ToAmount, modelQuote.AppliedRate,
		modelQuote.CreatedAt, modelQuote.ExpiresAt, modelQuote.Executed, modelQuote.ExecutedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save quote", err)
	}
	return nil
}

// FindQuoteByID retrieves a quote by its unique identifier.
func (r *PgxQuoteRepository) FindQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE quote_id = $1;`, quoteID)
	return scanQuote(row, quoteID)
}

// FindQuoteByIDForUpdate retrieves a quote and locks its row until the
// surrounding transaction ends. Must be called within a transaction. The lock
// granularity is the single quote row; unrelated quotes settle in parallel.
func (r *PgxQuoteRepository) FindQuoteByIDForUpdate(ctx context.Context, tx pgx.Tx, quoteID string) (*domain.Quote, error) {
	row := tx.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE quote_id = $1 FOR UPDATE;`, quoteID)
	return scanQuote(row, quoteID)
}

// MarkQuoteExecuted flips the quote to executed within the given transaction.
// The executed flag never reverts; the WHERE clause refuses to touch a quote
// that is already executed.
func (r *PgxQuoteRepository) MarkQuoteExecuted(ctx context.Context, tx pgx.Tx, quoteID string, executedAt time.Time) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE quotes
		SET executed = TRUE, executed_at = $2
		WHERE quote_id = $1 AND executed = FALSE`,
		quoteID, executedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark quote executed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("no unexecuted quote with ID " + quoteID)
	}
	return nil
}

func scanQuote(row pgx.Row, quoteID string) (*domain.Quote, error) {
	var modelQuote models.Quote
	err := row.Scan(
		&modelQuote.QuoteID, &modelQuote.FromCurrency, &modelQuote.ToCurrency,
		&modelQuote.FromAmount, &modelQuote.ToAmount, &modelQuote.AppliedRate,
		&modelQuote.CreatedAt, &modelQuote.ExpiresAt, &modelQuote.Executed, &modelQuote.ExecutedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("quote with ID " + quoteID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to scan quote", err)
	}

	domainQuote := mapping.ToDomainQuote(modelQuote)
	return &domainQuote, nil
}
