package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	accountapp "github.com/healclinics/storefront/internal/application/account"
	"github.com/healclinics/storefront/internal/interfaces/http/middleware"
)

// AccountHandler proxies account operations to the shop API.
type AccountHandler struct {
	BaseHandler
	accounts *accountapp.Service
}

// NewAccountHandler creates an account handler.
func NewAccountHandler(accounts *accountapp.Service) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Login authenticates a customer.
// POST /api/v1/auth/login
func (h *AccountHandler) Login(c *gin.Context) {
	var req accountapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.accounts.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Register creates a new customer account.
// POST /api/v1/auth/register
func (h *AccountHandler) Register(c *gin.Context) {
	var req accountapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.accounts.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Profile returns the authenticated account.
// GET /api/v1/account
func (h *AccountHandler) Profile(c *gin.Context) {
	token := middleware.GetAuthToken(c)
	if token == "" {
		h.Unauthorized(c, "Inloggen vereist")
		return
	}

	resp, err := h.accounts.Profile(c.Request.Context(), token)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Addresses lists the customer's address book.
// GET /api/v1/account/addresses
func (h *AccountHandler) Addresses(c *gin.Context) {
	token := middleware.GetAuthToken(c)
	if token == "" {
		h.Unauthorized(c, "Inloggen vereist")
		return
	}

	resp, err := h.accounts.Addresses(c.Request.Context(), token)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SaveAddress stores a new address-book entry.
// POST /api/v1/account/addresses
func (h *AccountHandler) SaveAddress(c *gin.Context) {
	token := middleware.GetAuthToken(c)
	if token == "" {
		h.Unauthorized(c, "Inloggen vereist")
		return
	}

	var req accountapp.SaveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.accounts.SaveAddress(c.Request.Context(), token, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// RemoveAddress deletes an address-book entry.
// DELETE /api/v1/account/addresses/:addressID
func (h *AccountHandler) RemoveAddress(c *gin.Context) {
	token := middleware.GetAuthToken(c)
	if token == "" {
		h.Unauthorized(c, "Inloggen vereist")
		return
	}

	addressID, err := strconv.ParseInt(c.Param("addressID"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Ongeldig adres ID")
		return
	}

	if err := h.accounts.RemoveAddress(c.Request.Context(), token, addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
