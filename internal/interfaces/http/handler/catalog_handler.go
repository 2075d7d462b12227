package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/healclinics/storefront/internal/application/catalog"
	"github.com/healclinics/storefront/internal/domain/shared"
)

// CatalogHandler exposes the product catalog.
type CatalogHandler struct {
	BaseHandler
	catalog *catalogapp.Service
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(catalog *catalogapp.Service) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List returns products, optionally filtered.
// GET /api/v1/products?category=&search=
func (h *CatalogHandler) List(c *gin.Context) {
	views, err := h.catalog.List(c.Request.Context(), c.Query("category"), c.Query("search"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// Get returns a single product.
// GET /api/v1/products/:productID
func (h *CatalogHandler) Get(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Ongeldig product ID")
		return
	}

	view, err := h.catalog.Get(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "Product niet gevonden")
			return
		}
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
