package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sokoflow/fx_engine/internal/apperrors"
	"github.com/sokoflow/fx_engine/internal/core/domain"
	portsrepo "github.com/sokoflow/fx_engine/internal/core/ports/repositories"
	portssvc "github.com/sokoflow/fx_engine/internal/core/ports/services"
	"github.com/sokoflow/fx_engine/internal/dto"
	"github.com/sokoflow/fx_engine/internal/platform/config"
	"github.com/sokoflow/fx_engine/internal/utils/fxmath"
)

// quoteService produces time-bounded, spread-adjusted quotes.
type quoteService struct {
	quoteRepo portsrepo.QuoteRepositoryFacade
	resolver  portssvc.RateResolverSvc
	cfg       config.FXConfig
}

// NewQuoteService creates a new quote service.
func NewQuoteService(quoteRepo portsrepo.QuoteRepositoryFacade, resolver portssvc.RateResolverSvc, cfg config.FXConfig) portssvc.QuoteSvcFacade {
	return &quoteService{
		quoteRepo: quoteRepo,
		resolver:  resolver,
		cfg:       cfg,
	}
}

var _ portssvc.QuoteSvcFacade = (*quoteService)(nil)

// GenerateQuote validates the request, resolves a base rate, applies the buy
// spread and persists a new quote. The unspread base rate is never exposed.
func (s *quoteService) GenerateQuote(ctx context.Context, req dto.CreateQuoteRequest) (*domain.Quote, error) {
	from := strings.ToUpper(req.FromCurrency)
	to := strings.ToUpper(req.ToCurrency)

	if !s.cfg.Supports(from) {
		return nil, fmt.Errorf("%w: %s (supported: %s)", apperrors.ErrInvalidCurrency, from, strings.Join(s.cfg.SupportedCurrencies, ", "))
	}
	if !s.cfg.Supports(to) {
		return nil, fmt.Errorf("%w: %s (supported: %s)", apperrors.ErrInvalidCurrency, to, strings.Join(s.cfg.SupportedCurrencies, ", "))
	}
	if from == to {
		return nil, apperrors.ErrSameCurrency
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrInvalidAmount)
	}

	baseRate, err := s.resolver.Resolve(ctx, from, to)
	if err != nil {
		return nil, err
	}

	effectiveRate := fxmath.ApplySpreadBps(baseRate, s.cfg.BuySpreadBps, fxmath.SpreadBuy)
	toAmount := fxmath.RoundCurrency(req.Amount.Mul(effectiveRate), fxmath.CurrencyScale)

	now := time.Now().UTC()
	quote := domain.Quote{
		QuoteID:      uuid.NewString(),
		FromCurrency: from,
		ToCurrency:   to,
		FromAmount:   req.Amount,
		ToAmount:     toAmount,
		AppliedRate:  effectiveRate,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.cfg.QuoteValidity),
		Executed:     false,
	}

	if err := s.quoteRepo.SaveQuote(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	return &quote, nil
}

// GetQuote retrieves a quote by ID.
func (s *quoteService) GetQuote(ctx context.Context, quoteID string) (*domain.Quote, error) {
	quote, err := s.quoteRepo.FindQuoteByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	return quote, nil
}
