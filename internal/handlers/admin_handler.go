package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartfinance/internal/services"
)

// AdminHandler handles client management requests.
type AdminHandler struct {
	clientService   services.ClientServicer
	transferService services.TransferServicer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(clientService services.ClientServicer, transferService services.TransferServicer) *AdminHandler {
	return &AdminHandler{clientService: clientService, transferService: transferService}
}

// ListClients handles listing all clients with their accounts.
// @Summary     List clients
// @Description List all clients with their wallet and savings accounts
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Clients"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/clients [get]
func (h *AdminHandler) ListClients(c *gin.Context) {
	if query := c.Query("q"); query != "" {
		clients, err := h.clientService.SearchClients(query)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"clients": clients})
		return
	}

	clients, err := h.clientService.AllClients()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// GetClient handles fetching one client by payee address.
// @Summary     Get a client
// @Description Get a client with accounts by payee address
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       address path string true "Payee address"
// @Success     200 {object} models.Client "Client"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Client not found"
// @Router      /admin/clients/{address} [get]
func (h *AdminHandler) GetClient(c *gin.Context) {
	client, err := h.clientService.GetClient(c.Param("address"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"client": client})
}

// DeleteClient handles removing a client and its accounts.
// @Summary     Delete a client
// @Description Delete a client together with its wallet and savings accounts
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       address path string true "Payee address"
// @Success     200 {object} map[string]string "Client deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Client not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/clients/{address} [delete]
func (h *AdminHandler) DeleteClient(c *gin.Context) {
	if err := h.transferService.DeleteClient(c.Param("address")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
