package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sokoflow/fx_engine/internal/apperrors"
	portssvc "github.com/sokoflow/fx_engine/internal/core/ports/services"
	"github.com/sokoflow/fx_engine/internal/dto"
	"github.com/sokoflow/fx_engine/internal/middleware"
)

// transactionHandler handles HTTP requests related to settled transactions.
type transactionHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ss portssvc.SettlementSvcFacade) *transactionHandler {
	return &transactionHandler{
		settlementService: ss,
	}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := newTransactionHandler(settlementService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.executeQuote)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transactionID", h.getTransaction)
	}
}

// executeQuote godoc
// @Summary Execute a quote
// @Description Settles a quote into a transaction exactly once; repeat requests return the same transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param body body dto.ExecuteQuoteRequest true "Quote to execute"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 404 {object} map[string]string "Quote not found"
// @Failure 410 {object} map[string]string "Quote expired"
// @Failure 500 {object} map[string]string "Failed to execute quote"
// @Router /transactions [post]
func (h *transactionHandler) executeQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ExecuteQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ExecuteQuote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.settlementService.ExecuteQuote(c.Request.Context(), req.QuoteID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrQuoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrQuoteExpired):
			// Distinct from not-found so callers can tell "never existed"
			// apart from "too late".
			c.JSON(http.StatusGone, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrSettlementInconsistency):
			logger.Error("Settlement inconsistency", slog.String("quote_id", req.QuoteID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal settlement error"})
		default:
			logger.Error("Failed to execute quote", slog.String("quote_id", req.QuoteID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to execute quote"})
		}
		return
	}

	logger.Info("Quote executed",
		slog.String("quote_id", req.QuoteID),
		slog.String("transaction_id", txn.TransactionID),
	)
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Retrieves a settled transaction by its identifier
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	txn, err := h.settlementService.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Returns recent transactions, most recent first
// @Tags transactions
// @Produce json
// @Param limit query int false "Maximum number of transactions" default(100)
// @Success 200 {array} dto.TransactionResponse
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	txns, err := h.settlementService.ListTransactions(c.Request.Context(), limit)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}
