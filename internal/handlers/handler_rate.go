package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sokoflow/fx_engine/internal/apperrors"
	portssvc "github.com/sokoflow/fx_engine/internal/core/ports/services"
	"github.com/sokoflow/fx_engine/internal/dto"
	"github.com/sokoflow/fx_engine/internal/middleware"
)

// rateHandler handles HTTP requests related to exchange rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{
		rateService: rs,
	}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.listRates)
		rates.POST("", h.upsertRate)
		rates.POST("/update", h.refreshRates)
	}
}

// listRates godoc
// @Summary List exchange rates
// @Description Returns all stored directed currency-pair rates
// @Tags rates
// @Produce json
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 500 {object} map[string]string "Failed to list exchange rates"
// @Router /rates [get]
func (h *rateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.rateService.ListRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list exchange rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exchange rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// upsertRate godoc
// @Summary Set an exchange rate
// @Description Inserts or overwrites the rate for a directed currency pair
// @Tags rates
// @Accept json
// @Produce json
// @Param rate body dto.UpsertRateRequest true "Exchange rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to save exchange rate"
// @Router /rates [post]
func (h *rateHandler) upsertRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpsertRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	rate, err := h.rateService.UpsertRate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error upserting exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to upsert exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save exchange rate"})
		}
		return
	}

	logger.Info("Exchange rate saved",
		slog.String("base", rate.BaseCurrency),
		slog.String("target", rate.TargetCurrency),
		slog.Any("rate", rate.Rate),
	)
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// refreshRates godoc
// @Summary Refresh rates from the external feed
// @Description Pulls the latest rates for a base currency and upserts every supported target
// @Tags rates
// @Accept json
// @Produce json
// @Param body body dto.RefreshRatesRequest false "Base currency (defaults to the hub currency)"
// @Success 200 {object} dto.RefreshRatesResponse
// @Failure 400 {object} map[string]string "Unsupported base currency"
// @Failure 502 {object} map[string]string "Feed failure"
// @Router /rates/update [post]
func (h *rateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	// Body is optional; when present it must parse.
	var req dto.RefreshRatesRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for RefreshRates", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	result, err := h.rateService.RefreshRates(c.Request.Context(), req.BaseCurrency)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCurrency) {
			logger.Warn("Unsupported base currency for refresh", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to refresh rates from feed", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to refresh rates from feed"})
		}
		return
	}

	logger.Info("Rates refreshed from feed",
		slog.String("base", result.BaseCurrency),
		slog.Int("rates_updated", result.RatesUpdated),
	)
	c.JSON(http.StatusOK, result)
}
