package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks a dependency's health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves health and readiness probes.
type SystemHandler struct {
	BaseHandler
	store   Pinger
	version string
}

// NewSystemHandler creates a system handler. store may be nil when the cart
// store has no health check.
func NewSystemHandler(store Pinger, version string) *SystemHandler {
	return &SystemHandler{store: store, version: version}
}

// Health reports liveness.
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status":  "ok",
		"version": h.version,
	})
}

// Ready reports readiness, including the cart store.
// GET /ready
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"error":  err.Error(),
			})
			return
		}
	}
	h.Success(c, gin.H{"status": "ready"})
}
