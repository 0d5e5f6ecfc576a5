package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/radshield/radshield-web/internal/i18n"
	"github.com/radshield/radshield-web/internal/middleware"
	"github.com/radshield/radshield-web/internal/models"
	"github.com/radshield/radshield-web/internal/services"
	"github.com/radshield/radshield-web/internal/variant"
)

// CatalogHandler serves the product catalogue as JSON
type CatalogHandler struct {
	service services.CatalogServiceInterface
	msgs    *i18n.Catalog
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(service services.CatalogServiceInterface, msgs *i18n.Catalog) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		msgs:    msgs,
	}
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	locale := middleware.GetLocale(c)

	var q models.CatalogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid query",
			ParseValidationErrors(err, h.msgs, locale), err)
		return
	}

	c.Header("Cache-Control", "public, max-age=300")
	c.JSON(http.StatusOK, h.service.List(locale, q))
}

// GetProduct handles GET /api/v1/products/:slug
// The pb and size query parameters select a variant.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	locale := middleware.GetLocale(c)

	p, err := h.service.Product(locale, c.Param("slug"), c.Query(variant.ParamLead), c.Query(variant.ParamSize))
	if err != nil {
		respondError(c, statusOf(err), h.msgs.T(locale, "product.not_found"), err)
		return
	}

	c.Header("Cache-Control", "public, max-age=300")
	c.JSON(http.StatusOK, p)
}

// Datasheet handles GET /api/v1/products/:slug/datasheet
// Redirects to the technical sheet of the pb grade.
func (h *CatalogHandler) Datasheet(c *gin.Context) {
	url, err := h.service.DatasheetURL(c.Request.Context(), c.Param("slug"), c.Query(variant.ParamLead))
	if err != nil {
		respondError(c, statusOf(err), "Datasheet not available", err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Redirect(http.StatusFound, url)
}
