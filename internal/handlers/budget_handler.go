package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// SaveBudgetRequest represents the request payload for creating or updating
// a budget. Saving the same category twice updates the monthly limit.
type SaveBudgetRequest struct {
	Category     string `json:"category" binding:"required,min=1,max=100"`
	MonthlyLimit string `json:"monthly_limit" binding:"required,positive_amount"`
}

// SaveBudget handles upserting a budget for a category.
// @Summary     Save a budget
// @Description Create a budget for a category, or update its monthly limit
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SaveBudgetRequest true "Budget details"
// @Success     200 {object} models.Budget "Budget saved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [put]
func (h *BudgetHandler) SaveBudget(c *gin.Context) {
	owner, err := getPayeeAddress(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SaveBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	limit, err := parseAmount("monthly_limit", req.MonthlyLimit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.SaveBudget(owner, req.Category, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetBudgets handles listing the client's budgets.
// @Summary     Get budgets
// @Description Get all budgets for the authenticated client
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       sync query bool false "Reconcile spent amounts with the ledger first"
// @Success     200 {object} map[string]interface{} "Budgets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	owner, err := getPayeeAddress(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	synchronize := c.Query("sync") == "true"
	budgets, err := h.budgetService.LoadBudgetsForOwner(owner, synchronize)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// RemainingBudget handles the per-category remaining headroom query.
// @Summary     Get remaining budget
// @Description Get remaining headroom for a category this month
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       category path string true "Budget category"
// @Success     200 {object} services.BudgetStatus "Budget status"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{category}/remaining [get]
func (h *BudgetHandler) RemainingBudget(c *gin.Context) {
	owner, err := getPayeeAddress(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.budgetService.RemainingBudget(owner, c.Param("category"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// Categories handles listing the distinct budgeted categories.
// @Summary     Get budget categories
// @Description Get the distinct categories the client has budgets for
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]string "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/categories [get]
func (h *BudgetHandler) Categories(c *gin.Context) {
	owner, err := getPayeeAddress(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.budgetService.BudgetCategories(owner)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// DeleteBudget handles removing a budget.
// @Summary     Delete a budget
// @Description Delete the budget for a category
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       category path string true "Budget category"
// @Success     200 {object} map[string]string "Budget deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{category} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	owner, err := getPayeeAddress(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(owner, c.Param("category")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
