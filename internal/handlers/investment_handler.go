package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/services"
)

// InvestmentHandler handles manually tracked investment positions.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService}
}

// AddInvestmentRequest represents the request payload for recording an
// investment position.
type AddInvestmentRequest struct {
	InvestmentType string `json:"investment_type" binding:"required,min=1,max=100"`
	AmountInvested string `json:"amount_invested" binding:"required,positive_amount"`
	CurrentValue   string `json:"current_value" binding:"required,nonnegative_amount"`
}

// UpdateInvestmentRequest represents the request payload for revaluing a
// position.
type UpdateInvestmentRequest struct {
	CurrentValue string `json:"current_value" binding:"required,nonnegative_amount"`
}

// AddInvestment handles recording a new investment position.
// @Summary     Add an investment
// @Description Record a manually tracked investment position
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddInvestmentRequest true "Investment details"
// @Success     201 {object} models.Investment "Investment recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [post]
func (h *InvestmentHandler) AddInvestment(c *gin.Context) {
	owner, err := getPayeeAddress(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	invested, err := parseAmount("amount_invested", req.AmountInvested)
	if err != nil {
		respondWithError(c, err)
		return
	}
	current, err := parseAmount("current_value", req.CurrentValue)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.investmentService.AddInvestment(owner, req.InvestmentType, invested, current)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"investment": investment})
}

// GetInvestments handles listing the client's positions.
// @Summary     Get investments
// @Description Get all investment positions for the authenticated client
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Investments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [get]
func (h *InvestmentHandler) GetInvestments(c *gin.Context) {
	owner, err := getPayeeAddress(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investments, err := h.investmentService.GetInvestments(owner)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investments": investments})
}

// UpdateInvestment handles revaluing a position.
// @Summary     Update an investment's value
// @Description Update the current value of an investment position
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                  true "Investment ID"
// @Param       request body UpdateInvestmentRequest true "New value"
// @Success     200 {object} models.Investment "Investment updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [patch]
func (h *InvestmentHandler) UpdateInvestment(c *gin.Context) {
	owner, err := getPayeeAddress(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	value, err := parseAmount("current_value", req.CurrentValue)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.investmentService.UpdateValue(owner, c.Param("id"), value)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}
