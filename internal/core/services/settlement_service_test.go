package services_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/sokoflow/fx_engine/internal/apperrors"
	"github.com/sokoflow/fx_engine/internal/core/domain"
	portssvc "github.com/sokoflow/fx_engine/internal/core/ports/services"
	"github.com/sokoflow/fx_engine/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// stubTx satisfies pgx.Tx for mock plumbing; none of its methods are invoked.
type stubTx struct {
	pgx.Tx
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByQuoteID(ctx context.Context, quoteID string) (*domain.Transaction, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

// --- Test Suite ---
type SettlementServiceTestSuite struct {
	suite.Suite
	mockQuoteRepo *MockQuoteRepository
	mockTxnRepo   *MockTransactionRepository
	service       portssvc.SettlementSvcFacade
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockQuoteRepo = new(MockQuoteRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewSettlementService(suite.mockQuoteRepo, suite.mockTxnRepo)
}

func pendingQuote(quoteID string, expiresAt time.Time) *domain.Quote {
	return &domain.Quote{
		QuoteID:      quoteID,
		FromCurrency: "USD",
		ToCurrency:   "KES",
		FromAmount:   decimal.NewFromInt(100),
		ToAmount:     decimal.RequireFromString("13014.75"),
		AppliedRate:  decimal.RequireFromString("130.1475"),
		CreatedAt:    time.Now().UTC().Add(-time.Second),
		ExpiresAt:    expiresAt,
		Executed:     false,
	}
}

// --- Test Cases ---

func (suite *SettlementServiceTestSuite) TestExecuteQuote_Success() {
	ctx := context.Background()
	tx := &stubTx{}
	quote := pendingQuote("quote-1", time.Now().UTC().Add(time.Minute))

	suite.mockQuoteRepo.On("Begin", ctx).Return(tx, nil).Once()
	suite.mockQuoteRepo.On("FindQuoteByIDForUpdate", ctx, tx, "quote-1").Return(quote, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, tx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockQuoteRepo.On("MarkQuoteExecuted", ctx, tx, "quote-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockQuoteRepo.On("Commit", ctx, tx).Return(nil).Once()
	suite.mockQuoteRepo.On("Rollback", ctx, tx).Return(nil).Maybe()

	txn, err := suite.service.ExecuteQuote(ctx, "quote-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal("quote-1", txn.QuoteID)
	suite.Equal(quote.FromCurrency, txn.FromCurrency)
	suite.Equal(quote.ToCurrency, txn.ToCurrency)
	suite.True(txn.FromAmount.Equal(quote.FromAmount))
	suite.True(txn.ToAmount.Equal(quote.ToAmount))
	suite.True(txn.AppliedRate.Equal(quote.AppliedRate))
	suite.Equal(domain.TransactionCompleted, txn.Status)

	suite.mockQuoteRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestExecuteQuote_QuoteNotFound() {
	ctx := context.Background()
	tx := &stubTx{}

	suite.mockQuoteRepo.On("Begin", ctx).Return(tx, nil).Once()
	suite.mockQuoteRepo.On("FindQuoteByIDForUpdate", ctx, tx, "missing").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockQuoteRepo.On("Rollback", ctx, tx).Return(nil).Once()

	txn, err := suite.service.ExecuteQuote(ctx, "missing")

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrQuoteNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
	suite.mockQuoteRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestExecuteQuote_Expired() {
	ctx := context.Background()
	tx := &stubTx{}
	quote := pendingQuote("quote-2", time.Now().UTC().Add(-time.Second))

	suite.mockQuoteRepo.On("Begin", ctx).Return(tx, nil).Once()
	suite.mockQuoteRepo.On("FindQuoteByIDForUpdate", ctx, tx, "quote-2").Return(quote, nil).Once()
	suite.mockQuoteRepo.On("Rollback", ctx, tx).Return(nil).Once()

	txn, err := suite.service.ExecuteQuote(ctx, "quote-2")

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrQuoteExpired)
	// An expired quote is rejected without any writes.
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
	suite.mockQuoteRepo.AssertNotCalled(suite.T(), "MarkQuoteExecuted")
	suite.mockQuoteRepo.AssertNotCalled(suite.T(), "Commit")
}

func (suite *SettlementServiceTestSuite) TestExecuteQuote_AlreadyExecutedReturnsExistingTransaction() {
	ctx := context.Background()
	tx := &stubTx{}
	quote := pendingQuote("quote-3", time.Now().UTC().Add(time.Minute))
	quote.Executed = true
	existing := &domain.Transaction{TransactionID: "txn-1", QuoteID: "quote-3", Status: domain.TransactionCompleted}

	suite.mockQuoteRepo.On("Begin", ctx).Return(tx, nil).Once()
	suite.mockQuoteRepo.On("FindQuoteByIDForUpdate", ctx, tx, "quote-3").Return(quote, nil).Once()
	suite.mockQuoteRepo.On("Rollback", ctx, tx).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByQuoteID", ctx, "quote-3").Return(existing, nil).Once()

	txn, err := suite.service.ExecuteQuote(ctx, "quote-3")

	suite.Require().NoError(err)
	suite.Equal(existing, txn)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
	suite.mockQuoteRepo.AssertNotCalled(suite.T(), "MarkQuoteExecuted")
}

func (suite *SettlementServiceTestSuite) TestExecuteQuote_ExecutedQuoteWithoutTransaction() {
	ctx := context.Background()
	tx := &stubTx{}
	quote := pendingQuote("quote-4", time.Now().UTC().Add(time.Minute))
	quote.Executed = true

	suite.mockQuoteRepo.On("Begin", ctx).Return(tx, nil).Once()
	suite.mockQuoteRepo.On("FindQuoteByIDForUpdate", ctx, tx, "quote-4").Return(quote, nil).Once()
	suite.mockQuoteRepo.On("Rollback", ctx, tx).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByQuoteID", ctx, "quote-4").Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.ExecuteQuote(ctx, "quote-4")

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrSettlementInconsistency)
}

func (suite *SettlementServiceTestSuite) TestExecuteQuote_BeginFails() {
	ctx := context.Background()
	beginErr := errors.New("pool exhausted")

	suite.mockQuoteRepo.On("Begin", ctx).Return(nil, beginErr).Once()

	txn, err := suite.service.ExecuteQuote(ctx, "quote-5")

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.Contains(err.Error(), "pool exhausted")
}

func (suite *SettlementServiceTestSuite) TestGetTransaction_NotFound() {
	ctx := context.Background()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.GetTransaction(ctx, "missing")

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrTransactionNotFound)
}

func (suite *SettlementServiceTestSuite) TestListTransactions_ClampsLimit() {
	ctx := context.Background()

	suite.mockTxnRepo.On("ListTransactions", ctx, 100).Return([]domain.Transaction{}, nil).Times(2)
	suite.mockTxnRepo.On("ListTransactions", ctx, 50).Return([]domain.Transaction{}, nil).Once()

	_, err := suite.service.ListTransactions(ctx, 0)
	suite.Require().NoError(err)
	_, err = suite.service.ListTransactions(ctx, 5000)
	suite.Require().NoError(err)
	_, err = suite.service.ListTransactions(ctx, 50)
	suite.Require().NoError(err)

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestSettlementService(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}

// --- In-memory repositories with real row locking ---
//
// The mock-based tests above pin down the call sequence; these fakes hold a
// per-quote lock from FindQuoteByIDForUpdate until Commit/Rollback, the same
// blocking behavior SELECT ... FOR UPDATE gives the real repository. That lets
// the concurrency test drive many goroutines through the actual critical
// section.

type memTx struct {
	pgx.Tx
	held     []*sync.Mutex
	released bool
}

func (t *memTx) release() {
	if t.released {
		return
	}
	t.released = true
	for i := len(t.held) - 1; i >= 0; i-- {
		t.held[i].Unlock()
	}
}

type memStore struct {
	mu     sync.Mutex
	locks  map[string]*sync.Mutex
	quotes map[string]domain.Quote
	txns   map[string]domain.Transaction // keyed by quote ID
}

func newMemStore() *memStore {
	return &memStore{
		locks:  make(map[string]*sync.Mutex),
		quotes: make(map[string]domain.Quote),
		txns:   make(map[string]domain.Transaction),
	}
}

type memQuoteRepo struct {
	store *memStore
}

func (r *memQuoteRepo) Begin(ctx context.Context) (pgx.Tx, error) {
	return &memTx{}, nil
}

func (r *memQuoteRepo) Commit(ctx context.Context, tx pgx.Tx) error {
	tx.(*memTx).release()
	return nil
}

func (r *memQuoteRepo) Rollback(ctx context.Context, tx pgx.Tx) error {
	tx.(*memTx).release()
	return nil
}

func (r *memQuoteRepo) FindQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q, ok := r.store.quotes[quoteID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &q, nil
}

func (r *memQuoteRepo) FindQuoteByIDForUpdate(ctx context.Context, tx pgx.Tx, quoteID string) (*domain.Quote, error) {
	r.store.mu.Lock()
	rowLock, ok := r.store.locks[quoteID]
	if !ok {
		rowLock = &sync.Mutex{}
		r.store.locks[quoteID] = rowLock
	}
	r.store.mu.Unlock()

	rowLock.Lock()
	mt := tx.(*memTx)
	mt.held = append(mt.held, rowLock)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q, found := r.store.quotes[quoteID]
	if !found {
		return nil, apperrors.ErrNotFound
	}
	return &q, nil
}

func (r *memQuoteRepo) SaveQuote(ctx context.Context, quote domain.Quote) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.quotes[quote.QuoteID] = quote
	return nil
}

func (r *memQuoteRepo) MarkQuoteExecuted(ctx context.Context, tx pgx.Tx, quoteID string, executedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q, ok := r.store.quotes[quoteID]
	if !ok {
		return apperrors.ErrNotFound
	}
	at := executedAt
	q.Executed = true
	q.ExecutedAt = &at
	r.store.quotes[quoteID] = q
	return nil
}

type memTxnRepo struct {
	store *memStore
}

func (r *memTxnRepo) SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.txns[txn.QuoteID]; exists {
		return apperrors.ErrDuplicate
	}
	r.store.txns[txn.QuoteID] = txn
	return nil
}

func (r *memTxnRepo) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, txn := range r.store.txns {
		if txn.TransactionID == transactionID {
			t := txn
			return &t, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memTxnRepo) FindTransactionByQuoteID(ctx context.Context, quoteID string) (*domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	txn, ok := r.store.txns[quoteID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	t := txn
	return &t, nil
}

func (r *memTxnRepo) ListTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]domain.Transaction, 0, len(r.store.txns))
	for _, txn := range r.store.txns {
		out = append(out, txn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func TestExecuteQuote_ConcurrentCallersSettleOnce(t *testing.T) {
	store := newMemStore()
	quoteRepo := &memQuoteRepo{store: store}
	txnRepo := &memTxnRepo{store: store}
	service := services.NewSettlementService(quoteRepo, txnRepo)

	ctx := context.Background()
	quote := pendingQuote("quote-racy", time.Now().UTC().Add(time.Minute))
	if err := quoteRepo.SaveQuote(ctx, *quote); err != nil {
		t.Fatalf("seed quote: %v", err)
	}

	const callers = 32
	results := make([]*domain.Transaction, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = service.ExecuteQuote(ctx, "quote-racy")
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: unexpected error: %v", i, errs[i])
		}
		if results[i] == nil {
			t.Fatalf("caller %d: nil transaction", i)
		}
		if results[i].TransactionID != results[0].TransactionID {
			t.Fatalf("caller %d got transaction %s, caller 0 got %s", i, results[i].TransactionID, results[0].TransactionID)
		}
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if got := len(store.txns); got != 1 {
		t.Fatalf("expected exactly one settled transaction, got %d", got)
	}
	q := store.quotes["quote-racy"]
	if !q.Executed || q.ExecutedAt == nil {
		t.Fatalf("quote not marked executed after settlement")
	}
}

func TestExecuteQuote_RepeatedCallsAreIdempotent(t *testing.T) {
	store := newMemStore()
	quoteRepo := &memQuoteRepo{store: store}
	txnRepo := &memTxnRepo{store: store}
	service := services.NewSettlementService(quoteRepo, txnRepo)

	ctx := context.Background()
	quote := pendingQuote("quote-repeat", time.Now().UTC().Add(time.Minute))
	if err := quoteRepo.SaveQuote(ctx, *quote); err != nil {
		t.Fatalf("seed quote: %v", err)
	}

	first, err := service.ExecuteQuote(ctx, "quote-repeat")
	if err != nil {
		t.Fatalf("first execution: %v", err)
	}
	second, err := service.ExecuteQuote(ctx, "quote-repeat")
	if err != nil {
		t.Fatalf("second execution: %v", err)
	}

	if first.TransactionID != second.TransactionID {
		t.Fatalf("repeat execution created a new transaction: %s vs %s", first.TransactionID, second.TransactionID)
	}
	if !first.ToAmount.Equal(second.ToAmount) || !first.AppliedRate.Equal(second.AppliedRate) {
		t.Fatalf("repeat execution returned different amounts")
	}
}

func TestExecuteQuote_ExpiredQuoteLeavesNoTrace(t *testing.T) {
	store := newMemStore()
	quoteRepo := &memQuoteRepo{store: store}
	txnRepo := &memTxnRepo{store: store}
	service := services.NewSettlementService(quoteRepo, txnRepo)

	ctx := context.Background()
	quote := pendingQuote("quote-stale", time.Now().UTC().Add(-time.Minute))
	if err := quoteRepo.SaveQuote(ctx, *quote); err != nil {
		t.Fatalf("seed quote: %v", err)
	}

	txn, err := service.ExecuteQuote(ctx, "quote-stale")
	if !errors.Is(err, apperrors.ErrQuoteExpired) {
		t.Fatalf("expected expired error, got %v", err)
	}
	if txn != nil {
		t.Fatalf("expected no transaction for expired quote")
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.txns) != 0 {
		t.Fatalf("expired quote must not settle")
	}
	q := store.quotes["quote-stale"]
	if q.Executed || q.ExecutedAt != nil {
		t.Fatalf("expired quote row must stay untouched")
	}
}
