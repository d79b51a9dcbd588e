package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/middleware"
	"smartfinance/internal/models"
	"smartfinance/internal/services"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	transferService services.TransferServicer
	clientService   services.ClientServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(transferService services.TransferServicer, clientService services.ClientServicer) *AuthHandler {
	return &AuthHandler{transferService: transferService, clientService: clientService}
}

// RegisterRequest represents the registration request payload. Monetary
// fields arrive as decimal strings.
type RegisterRequest struct {
	FirstName      string `json:"first_name" binding:"required,max=100"`
	LastName       string `json:"last_name" binding:"required,max=100"`
	PayeeAddress   string `json:"payee_address" binding:"required,payee_address"`
	Password       string `json:"password" binding:"required,min=8,max=128"`
	InitialWallet  string `json:"initial_wallet" binding:"omitempty,nonnegative_amount"`
	InitialSavings string `json:"initial_savings" binding:"omitempty,nonnegative_amount"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	PayeeAddress string `json:"payee_address" binding:"required"`
	Password     string `json:"password" binding:"required"`
}

// ClientResponse represents the client data in the response
type ClientResponse struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PayeeAddress string `json:"payee_address"`
}

// AuthResponse represents the authentication response with token
type AuthResponse struct {
	Token  string         `json:"token"`
	Client ClientResponse `json:"client"`
}

// Register handles client onboarding
// @Summary     Register a new client
// @Description Create a client together with its wallet and savings accounts
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "Client registration data"
// @Success     201 {object} AuthResponse "Client registered and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Payee address already taken"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	initialWallet := decimal.Zero
	if req.InitialWallet != "" {
		var err error
		if initialWallet, err = parseAmount("initial_wallet", req.InitialWallet); err != nil {
			respondWithError(c, err)
			return
		}
	}
	initialSavings := decimal.Zero
	if req.InitialSavings != "" {
		var err error
		if initialSavings, err = parseAmount("initial_savings", req.InitialSavings); err != nil {
			respondWithError(c, err)
			return
		}
	}

	client, err := h.transferService.CreateClient(
		req.FirstName, req.LastName, req.PayeeAddress, req.Password, initialWallet, initialSavings,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(client)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Token:  token,
		Client: toClientResponse(client),
	})
}

// Login handles client login
// @Summary     Login a client
// @Description Authenticate by payee address and password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Client credentials"
// @Success     200 {object} AuthResponse "Client authenticated and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	client, err := h.clientService.Login(req.PayeeAddress, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(client)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token:  token,
		Client: toClientResponse(client),
	})
}

// Me returns the authenticated client with its accounts
// @Summary     Get current client
// @Description Get the authenticated client with wallet and savings accounts
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Client "Current client"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Client not found"
// @Router      /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	address, err := getPayeeAddress(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	client, err := h.clientService.GetClient(address)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"client": client})
}

func toClientResponse(client *models.Client) ClientResponse {
	return ClientResponse{
		ID:           client.ID,
		FirstName:    client.FirstName,
		LastName:     client.LastName,
		PayeeAddress: client.PayeeAddress,
	}
}
