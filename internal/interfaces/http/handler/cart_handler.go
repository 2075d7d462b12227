package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	cartapp "github.com/healclinics/storefront/internal/application/cart"
	"github.com/healclinics/storefront/internal/interfaces/http/middleware"
)

// CartHandler exposes the session cart.
type CartHandler struct {
	BaseHandler
	carts *cartapp.Service
}

// NewCartHandler creates a cart handler.
func NewCartHandler(carts *cartapp.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

// Get returns the session's cart.
// GET /api/v1/cart
func (h *CartHandler) Get(c *gin.Context) {
	resp, err := h.carts.Get(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem adds a product to the cart.
// POST /api/v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.carts.AddItem(c.Request.Context(), middleware.GetSessionID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateItem changes a line's quantity. Quantity zero removes the line.
// PUT /api/v1/cart/items/:productID
func (h *CartHandler) UpdateItem(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Ongeldig product ID")
		return
	}

	var req cartapp.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.carts.UpdateQuantity(c.Request.Context(), middleware.GetSessionID(c), productID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem removes a line from the cart.
// DELETE /api/v1/cart/items/:productID
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Ongeldig product ID")
		return
	}

	resp, err := h.carts.RemoveItem(c.Request.Context(), middleware.GetSessionID(c), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Clear empties the cart.
// DELETE /api/v1/cart
func (h *CartHandler) Clear(c *gin.Context) {
	resp, err := h.carts.Clear(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetOpen opens or closes the cart panel.
// PUT /api/v1/cart/open
func (h *CartHandler) SetOpen(c *gin.Context) {
	var req struct {
		Open bool `json:"open"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.carts.SetOpen(c.Request.Context(), middleware.GetSessionID(c), req.Open)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
