package handler

import (
	"github.com/gin-gonic/gin"
	corrapp "github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/application/correspondence"
)

// CatalogHandler serves the read-only reference data
type CatalogHandler struct {
	BaseHandler
	catalogService *corrapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *corrapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// LetterTypes lists letter types.
// GET /catalog/letter-types
func (h *CatalogHandler) LetterTypes(c *gin.Context) {
	types, err := h.catalogService.LetterTypes(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, types)
}

// Divisions lists divisions.
// GET /catalog/divisions
func (h *CatalogHandler) Divisions(c *gin.Context) {
	divisions, err := h.catalogService.Divisions(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, divisions)
}
