package pgsql

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sokoflow/fx_engine/internal/apperrors"
	"github.com/sokoflow/fx_engine/internal/core/domain"
	"github.com/sokoflow/fx_engine/internal/models"
	"github.com/sokoflow/fx_engine/internal/utils/mapping"
)

// PgxExchangeRateRepository implements the exchange rate repository ports using pgxpool.
// It is strictly a keyed store of directed pairs; rate resolution (inverse,
// cross via hub) lives in the rate service.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// NewPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveExchangeRate inserts or overwrites the directed pair, always advancing
// updated_at. The single upsert statement serializes concurrent writers on the
// same pair (last-committed-write-wins) without blocking writers of other pairs.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	base := strings.ToUpper(rate.BaseCurrency)
	target := strings.ToUpper(rate.TargetCurrency)

	if base == target {
		return apperrors.NewValidationError("base and target currencies cannot be the same")
	}

	modelRate := mapping.ToModelExchangeRate(rate)
	modelRate.BaseCurrency = base
	modelRate.TargetCurrency = target

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO exchange_rates (exchange_rate_id, base_currency, target_currency, rate, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (base_currency, target_currency)
		DO UPDATE SET rate = EXCLUDED.rate, updated_at = EXCLUDED.updated_at`,
		modelRate.ExchangeRateID, modelRate.BaseCurrency, modelRate.TargetCurrency,
		modelRate.Rate, modelRate.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save exchange rate", err)
	}
	return nil
}

// FindExchangeRate retrieves the stored rate for the directed pair base -> target.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, baseCurrency, targetCurrency string) (*domain.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, base_currency, target_currency, rate, updated_at
		FROM exchange_rates
		WHERE base_currency = $1 AND target_currency = $2;
	`

	var modelRate models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, strings.ToUpper(baseCurrency), strings.ToUpper(targetCurrency)).Scan(
		&modelRate.ExchangeRateID, &modelRate.BaseCurrency, &modelRate.TargetCurrency,
		&modelRate.Rate, &modelRate.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("exchange rate not found for pair " + baseCurrency + "/" + targetCurrency)
		}
		return nil, apperrors.NewAppError(500, "failed to find exchange rate", err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// ListExchangeRates retrieves all stored exchange rates.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, base_currency, target_currency, rate, updated_at
		FROM exchange_rates
		ORDER BY base_currency, target_currency;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list exchange rates", err)
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		var modelRate models.ExchangeRate
		err := rows.Scan(
			&modelRate.ExchangeRateID, &modelRate.BaseCurrency, &modelRate.TargetCurrency,
			&modelRate.Rate, &modelRate.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan exchange rate", err)
		}
		rates = append(rates, mapping.ToDomainExchangeRate(modelRate))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating exchange rates", err)
	}

	return rates, nil
}
