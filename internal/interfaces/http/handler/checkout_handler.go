package handler

import (
	"github.com/gin-gonic/gin"

	checkoutapp "github.com/healclinics/storefront/internal/application/checkout"
	"github.com/healclinics/storefront/internal/interfaces/http/middleware"
)

// CheckoutHandler drives checkout and payment status polling.
type CheckoutHandler struct {
	BaseHandler
	checkout *checkoutapp.Service
}

// NewCheckoutHandler creates a checkout handler.
func NewCheckoutHandler(checkout *checkoutapp.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Start places an order for the session's cart and opens a payment.
// POST /api/v1/checkout
func (h *CheckoutHandler) Start(c *gin.Context) {
	var req checkoutapp.StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.checkout.Start(c.Request.Context(), middleware.GetSessionID(c), middleware.GetAuthToken(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Status reports a payment's state.
// GET /api/v1/checkout/payments/:paymentID
func (h *CheckoutHandler) Status(c *gin.Context) {
	resp, err := h.checkout.Status(c.Request.Context(), middleware.GetSessionID(c), c.Param("paymentID"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
