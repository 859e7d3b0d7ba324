package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sokoflow/fx_engine/internal/apperrors"
	"github.com/sokoflow/fx_engine/internal/core/domain"
	portsrepo "github.com/sokoflow/fx_engine/internal/core/ports/repositories"
	portssvc "github.com/sokoflow/fx_engine/internal/core/ports/services"
	"github.com/sokoflow/fx_engine/internal/middleware"
)

// settlementService executes quotes into transactions exactly once. The whole
// check-and-set runs inside one database transaction holding a row lock on the
// quote, so concurrent callers racing on the same quote serialize and the
// losers take the idempotent-return path.
type settlementService struct {
	quoteRepo portsrepo.QuoteRepositoryWithTx
	txnRepo   portsrepo.TransactionRepositoryFacade
}

// NewSettlementService creates a new settlement service.
func NewSettlementService(quoteRepo portsrepo.QuoteRepositoryWithTx, txnRepo portsrepo.TransactionRepositoryFacade) portssvc.SettlementSvcFacade {
	return &settlementService{
		quoteRepo: quoteRepo,
		txnRepo:   txnRepo,
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// ExecuteQuote settles a quote into a transaction.
//
// The critical section spans the read of the executed flag and the paired
// writes (transaction insert, quote update), which commit as one atomic unit.
// Checking and then writing without holding the lock across both would let two
// callers both observe executed=false and both settle.
func (s *settlementService) ExecuteQuote(ctx context.Context, quoteID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.quoteRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin settlement transaction: %w", err)
	}
	// Releases the row lock on every early return; a no-op after commit.
	defer func() { _ = s.quoteRepo.Rollback(ctx, tx) }()

	quote, err := s.quoteRepo.FindQuoteByIDForUpdate(ctx, tx, quoteID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrQuoteNotFound, quoteID)
		}
		return nil, fmt.Errorf("failed to lock quote %s: %w", quoteID, err)
	}

	if quote.Executed {
		return s.findExecutedTransaction(ctx, logger, quoteID)
	}

	now := time.Now().UTC()
	if quote.IsExpired(now) {
		// Expiry is evaluated lazily; the quote row is not touched.
		return nil, fmt.Errorf("%w: %s expired at %s", apperrors.ErrQuoteExpired, quoteID, quote.ExpiresAt.Format(time.RFC3339))
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		QuoteID:       quote.QuoteID,
		FromCurrency:  quote.FromCurrency,
		ToCurrency:    quote.ToCurrency,
		FromAmount:    quote.FromAmount,
		ToAmount:      quote.ToAmount,
		AppliedRate:   quote.AppliedRate,
		Status:        domain.TransactionCompleted,
		CreatedAt:     now,
	}

	if err := s.txnRepo.SaveTransaction(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("failed to save transaction for quote %s: %w", quoteID, err)
	}
	if err := s.quoteRepo.MarkQuoteExecuted(ctx, tx, quoteID, now); err != nil {
		return nil, fmt.Errorf("failed to mark quote %s executed: %w", quoteID, err)
	}
	if err := s.quoteRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit settlement of quote %s: %w", quoteID, err)
	}

	logger.Info("Quote settled",
		slog.String("quote_id", quoteID),
		slog.String("transaction_id", txn.TransactionID),
	)
	return &txn, nil
}

// findExecutedTransaction is the idempotency path: the quote is already
// executed, so the existing transaction is returned unchanged. An executed
// quote without a linked transaction is a data-integrity fault; it is logged
// and surfaced, never silently repaired.
func (s *settlementService) findExecutedTransaction(ctx context.Context, logger *slog.Logger, quoteID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByQuoteID(ctx, quoteID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Quote marked executed but no linked transaction exists",
				slog.String("quote_id", quoteID),
			)
			return nil, fmt.Errorf("%w: quote %s is executed but has no transaction", apperrors.ErrSettlementInconsistency, quoteID)
		}
		return nil, fmt.Errorf("failed to load transaction for executed quote %s: %w", quoteID, err)
	}
	return txn, nil
}

// GetTransaction retrieves a transaction by ID.
func (s *settlementService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrTransactionNotFound, transactionID)
		}
		return nil, err
	}
	return txn, nil
}

// ListTransactions returns up to limit transactions, most recent first.
func (s *settlementService) ListTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	return s.txnRepo.ListTransactions(ctx, limit)
}
