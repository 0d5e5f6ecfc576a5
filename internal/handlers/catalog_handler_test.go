package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/radshield/radshield-web/internal/catalog"
	"github.com/radshield/radshield-web/internal/i18n"
	"github.com/radshield/radshield-web/internal/middleware"
	"github.com/radshield/radshield-web/internal/models"
	"github.com/radshield/radshield-web/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogAPI(datasheets services.DatasheetResolver) *gin.Engine {
	h := NewCatalogHandler(services.NewCatalogService(catalog.MustDefault(), datasheets), i18n.Default())

	router := gin.New()
	api := router.Group("/api/v1", middleware.NegotiateLocaleMiddleware(i18n.FR))
	api.GET("/products", h.ListProducts)
	api.GET("/products/:slug", h.GetProduct)
	api.GET("/products/:slug/datasheet", h.Datasheet)
	return router
}

func TestCatalogHandler_ListProducts(t *testing.T) {
	router := newCatalogAPI(stubDatasheets{})

	tests := []struct {
		name   string
		path   string
		status int
		total  int
	}{
		{"everything", "/api/v1/products", http.StatusOK, 8},
		{"category", "/api/v1/products?category=aprons", http.StatusOK, 3},
		{"unknown category is ignored", "/api/v1/products?category=helmets", http.StatusOK, 8},
		{"query too long", "/api/v1/products?size=GIGANTIC", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, newRequest(http.MethodGet, tt.path))

			assert.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusOK {
				return
			}
			var resp models.CatalogResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.total, resp.Total)
			assert.Len(t, resp.Products, tt.total)
		})
	}
}

func TestCatalogHandler_GetProduct(t *testing.T) {
	router := newCatalogAPI(stubDatasheets{})

	req := newRequest(http.MethodGet, "/api/v1/products/tablier-plombe-premium?pb=0%2C25+mm+Pb&size=XXL")
	req.Header.Set("Accept-Language", "en")
	w := serve(router, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.ProductDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, catalog.Lead025, resp.SelectedLead)
	assert.Equal(t, catalog.SizeM, resp.SelectedSize, "XXL is not offered at 0,25 mm Pb")
	assert.Equal(t, "/en/products/tablier-plombe-premium", resp.URL)
	assert.Contains(t, resp.QuoteURL, "/en/quote?")

	w = serve(router, newRequest(http.MethodGet, "/api/v1/products/lead-umbrella"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Produit introuvable.")
}

func TestCatalogHandler_Datasheet(t *testing.T) {
	tests := []struct {
		name       string
		datasheets stubDatasheets
		path       string
		status     int
		location   string
	}{
		{
			name:     "redirects to the sheet",
			path:     "/api/v1/products/gants-radioattenuants/datasheet?pb=0%2C25+mm+Pb",
			status:   http.StatusFound,
			location: "https://sheets.example.test/datasheets/gants-025.pdf",
		},
		{
			name:   "grade without sheet",
			path:   "/api/v1/products/tablier-plombe-leger/datasheet?pb=0%2C35+mm+Pb",
			status: http.StatusNotFound,
		},
		{
			name:       "storage down",
			datasheets: stubDatasheets{err: errors.New("bucket unreachable")},
			path:       "/api/v1/products/gants-radioattenuants/datasheet",
			status:     http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newCatalogAPI(tt.datasheets), newRequest(http.MethodGet, tt.path))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.location, w.Header().Get("Location"))
		})
	}
}
