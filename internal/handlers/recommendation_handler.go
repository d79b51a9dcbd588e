package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartfinance/internal/analytics"
	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/services"
)

// RecommendationHandler handles stock suggestion and market data requests.
type RecommendationHandler struct {
	recommendationService services.RecommendationServicer
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(recommendationService services.RecommendationServicer) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// Suggestions handles ranked suggestions for a risk profile.
// @Summary     Get stock suggestions
// @Description Get ranked stock suggestions for a risk profile
// @Tags        recommendations
// @Produce     json
// @Security    BearerAuth
// @Param       profile query string true "Risk profile (conservative/moderate/aggressive)"
// @Success     200 {object} map[string]interface{} "Suggestions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /recommendations/suggestions [get]
func (h *RecommendationHandler) Suggestions(c *gin.Context) {
	profile, err := analytics.ParseRiskProfile(c.Query("profile"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	suggestions := h.recommendationService.Suggestions(c.Request.Context(), profile)
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// Trending handles the trending instrument feed.
// @Summary     Get trending stocks
// @Description Get trending instruments ranked by absolute percent change
// @Tags        recommendations
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Trending stocks"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /recommendations/trending [get]
func (h *RecommendationHandler) Trending(c *gin.Context) {
	trending := h.recommendationService.TrendingStocks(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"trending": trending})
}

// History handles the historical close-price series for one symbol.
// @Summary     Get historical prices
// @Description Get the close-price series for a symbol over the lookback period
// @Tags        recommendations
// @Produce     json
// @Security    BearerAuth
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} map[string]interface{} "Close prices"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Symbol not found"
// @Failure     503 {object} ErrorResponse "Market data unavailable"
// @Router      /recommendations/history/{symbol} [get]
func (h *RecommendationHandler) History(c *gin.Context) {
	symbol := c.Param("symbol")
	if symbol == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required"))
		return
	}

	closes, err := h.recommendationService.HistoricalPrices(c.Request.Context(), symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "closes": closes})
}
