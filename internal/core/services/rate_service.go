package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sokoflow/fx_engine/internal/apperrors"
	"github.com/sokoflow/fx_engine/internal/core/domain"
	"github.com/sokoflow/fx_engine/internal/core/ports"
	portsrepo "github.com/sokoflow/fx_engine/internal/core/ports/repositories"
	portssvc "github.com/sokoflow/fx_engine/internal/core/ports/services"
	"github.com/sokoflow/fx_engine/internal/dto"
	"github.com/sokoflow/fx_engine/internal/middleware"
	"github.com/sokoflow/fx_engine/internal/platform/config"
	"github.com/sokoflow/fx_engine/internal/utils/fxmath"
)

// seedRates is the development bootstrap grid.
var seedRates = map[string]map[string]string{
	"USD": {"EUR": "0.92", "KES": "129.50", "NGN": "775.00"},
	"EUR": {"USD": "1.09", "KES": "140.76", "NGN": "842.39"},
}

// rateService manages the stored rate set and resolves effective rates between
// currency pairs: direct, inverse, or synthetic cross rate via the hub currency.
type rateService struct {
	rateRepo portsrepo.ExchangeRateRepositoryFacade
	feed     ports.RateFeedProvider
	cfg      config.FXConfig
}

// NewRateService creates a new rate service.
func NewRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, feed ports.RateFeedProvider, cfg config.FXConfig) portssvc.RateSvcFacade {
	return &rateService{
		rateRepo: rateRepo,
		feed:     feed,
		cfg:      cfg,
	}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// Resolve returns the effective rate from -> to. Resolution order: direct pair,
// inverse pair, then a single-hop cross rate via the hub currency. Each hub leg
// is itself restricted to direct/inverse, so resolution is bounded and cycle
// free by construction.
func (s *rateService) Resolve(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	from := strings.ToUpper(fromCurrency)
	to := strings.ToUpper(toCurrency)

	rate, err := s.resolveSingleHop(ctx, from, to)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, err
	}

	// Cross rate only applies when neither side already is the hub.
	hub := s.cfg.HubCurrency
	if from != hub && to != hub {
		fromToHub, errFrom := s.resolveSingleHop(ctx, from, hub)
		if errFrom != nil && !errors.Is(errFrom, apperrors.ErrNotFound) {
			return decimal.Zero, errFrom
		}
		hubToTarget, errTo := s.resolveSingleHop(ctx, hub, to)
		if errTo != nil && !errors.Is(errTo, apperrors.ErrNotFound) {
			return decimal.Zero, errTo
		}
		if errFrom == nil && errTo == nil {
			return fromToHub.Mul(hubToTarget), nil
		}
	}

	return decimal.Zero, fmt.Errorf("%w for pair %s/%s", apperrors.ErrRateUnavailable, from, to)
}

// resolveSingleHop tries the direct pair, then the stored inverse pair.
// Returns apperrors.ErrNotFound when neither is stored.
func (s *rateService) resolveSingleHop(ctx context.Context, from, to string) (decimal.Decimal, error) {
	direct, err := s.rateRepo.FindExchangeRate(ctx, from, to)
	if err == nil {
		return direct.Rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to look up rate %s/%s: %w", from, to, err)
	}

	inverse, err := s.rateRepo.FindExchangeRate(ctx, to, from)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to look up rate %s/%s: %w", to, from, err)
	}

	return fxmath.SafeDivide(decimal.NewFromInt(1), inverse.Rate)
}

// UpsertRate inserts or overwrites the directed pair.
func (s *rateService) UpsertRate(ctx context.Context, req dto.UpsertRateRequest) (*domain.ExchangeRate, error) {
	base := strings.ToUpper(req.BaseCurrency)
	target := strings.ToUpper(req.TargetCurrency)

	if len(base) != 3 || len(target) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	if base == target {
		return nil, fmt.Errorf("%w: base and target currency codes cannot be the same", apperrors.ErrValidation)
	}
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		BaseCurrency:   base,
		TargetCurrency: target,
		Rate:           req.Rate,
		UpdatedAt:      time.Now().UTC(),
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to save exchange rate: %w", err)
	}

	return &rate, nil
}

// ListRates returns all stored rates.
func (s *rateService) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	return rates, nil
}

// RefreshRates pulls the latest rates for the base currency (hub currency when
// empty) from the external feed and upserts every supported target.
func (s *rateService) RefreshRates(ctx context.Context, baseCurrency string) (*dto.RefreshRatesResponse, error) {
	base := strings.ToUpper(baseCurrency)
	if base == "" {
		base = s.cfg.HubCurrency
	}
	if !s.cfg.Supports(base) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidCurrency, base)
	}

	feedRates, err := s.feed.FetchLatest(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates from feed: %w", err)
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	updated := 0
	for code, rate := range feedRates {
		code = strings.ToUpper(code)
		if code == base || !s.cfg.Supports(code) {
			continue
		}
		if rate.LessThanOrEqual(decimal.Zero) {
			logger.Warn("Skipping non-positive feed rate",
				slog.String("base", base),
				slog.String("target", code),
				slog.String("rate", rate.String()),
			)
			continue
		}
		_, err := s.UpsertRate(ctx, dto.UpsertRateRequest{BaseCurrency: base, TargetCurrency: code, Rate: rate})
		if err != nil {
			return nil, fmt.Errorf("failed to store feed rate %s/%s: %w", base, code, err)
		}
		updated++
	}

	return &dto.RefreshRatesResponse{
		BaseCurrency: base,
		RatesUpdated: updated,
		Timestamp:    time.Now().UTC(),
	}, nil
}

// IsRateStale reports whether the stored direct rate for the pair is older than
// the configured staleness threshold. A missing rate counts as stale.
func (s *rateService) IsRateStale(ctx context.Context, fromCurrency, toCurrency string) (bool, error) {
	rate, err := s.rateRepo.FindExchangeRate(ctx, strings.ToUpper(fromCurrency), strings.ToUpper(toCurrency))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return true, nil
		}
		return false, fmt.Errorf("failed to check rate staleness: %w", err)
	}
	return rate.IsStale(time.Now().UTC(), s.cfg.StalenessThreshold), nil
}

// SeedRates loads the initial rate grid, for development and tests.
func (s *rateService) SeedRates(ctx context.Context) error {
	for base, targets := range seedRates {
		for target, value := range targets {
			rate, err := decimal.NewFromString(value)
			if err != nil {
				return fmt.Errorf("bad seed rate %s/%s: %w", base, target, err)
			}
			if _, err := s.UpsertRate(ctx, dto.UpsertRateRequest{BaseCurrency: base, TargetCurrency: target, Rate: rate}); err != nil {
				return err
			}
		}
	}
	return nil
}
