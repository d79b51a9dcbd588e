package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/pagination"
	"smartfinance/internal/services"
)

// TransferHandler handles money movement and transaction history requests.
type TransferHandler struct {
	transferService services.TransferServicer
	clientService   services.ClientServicer
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferService services.TransferServicer, clientService services.ClientServicer) *TransferHandler {
	return &TransferHandler{transferService: transferService, clientService: clientService}
}

// TransferRequest represents the request payload for sending money.
type TransferRequest struct {
	Receiver string `json:"receiver" binding:"required"`
	Amount   string `json:"amount" binding:"required,positive_amount"`
	Category string `json:"category" binding:"max=100"`
	Message  string `json:"message" binding:"max=500"`
}

// Transfer handles sending money from the authenticated client's savings
// account to another client's wallet.
// @Summary     Transfer money
// @Description Send money from savings to another client's wallet
// @Tags        transfers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransferRequest true "Transfer details"
// @Success     201 {object} map[string]string "Transfer completed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Receiver not found"
// @Failure     422 {object} ErrorResponse "Insufficient balance"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transfers [post]
func (h *TransferHandler) Transfer(c *gin.Context) {
	sender, err := getPayeeAddress(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transferService.TransferMoney(sender, req.Receiver, amount, req.Category, req.Message); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "transferred"})
}

// Transactions handles listing the authenticated client's transaction
// history, newest first.
// @Summary     Get transactions
// @Description Get a paginated list of transactions involving the client
// @Tags        transfers
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransferHandler) Transactions(c *gin.Context) {
	address, err := getPayeeAddress(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.clientService.Transactions(address, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SpendingByCategory handles the per-category outgoing spend rollup.
// @Summary     Get spending by category
// @Description Get total outgoing spend grouped by transaction category
// @Tags        transfers
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Category totals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/spending [get]
func (h *TransferHandler) SpendingByCategory(c *gin.Context) {
	address, err := getPayeeAddress(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.clientService.SpendingByCategory(address)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"spending": totals})
}
