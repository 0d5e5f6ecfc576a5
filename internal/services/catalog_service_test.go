package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/radshield/radshield-web/internal/catalog"
	"github.com/radshield/radshield-web/internal/models"
	"github.com/radshield/radshield-web/internal/services"
	apperrors "github.com/radshield/radshield-web/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService() (*services.CatalogService, *MockDatasheetResolver) {
	resolver := new(MockDatasheetResolver)
	return services.NewCatalogService(catalog.MustDefault(), resolver), resolver
}

func TestCatalogService_List(t *testing.T) {
	svc, _ := newCatalogService()

	t.Run("no filter", func(t *testing.T) {
		resp := svc.List("fr", models.CatalogQuery{})
		assert.Equal(t, len(catalog.MustDefault().All()), resp.Total)
		assert.Equal(t, "featured", resp.Sort)
		assert.NotEmpty(t, resp.Facets)
		assert.Equal(t, "/fr/produits/"+resp.Products[0].Slug, resp.Products[0].URL)
	})

	t.Run("category filter", func(t *testing.T) {
		resp := svc.List("en", models.CatalogQuery{Category: "aprons"})
		require.NotEmpty(t, resp.Products)
		for _, p := range resp.Products {
			assert.Equal(t, catalog.CategoryAprons, p.Category)
		}
	})

	t.Run("unknown values are ignored", func(t *testing.T) {
		all := svc.List("fr", models.CatalogQuery{})
		resp := svc.List("fr", models.CatalogQuery{Category: "hats", Lead: "2 mm", Sort: "random"})
		assert.Equal(t, all.Total, resp.Total)
		assert.Equal(t, "featured", resp.Sort)
	})

	t.Run("grade and size filter", func(t *testing.T) {
		resp := svc.List("fr", models.CatalogQuery{Lead: "0,50 mm Pb", Size: "XXL"})
		require.NotEmpty(t, resp.Products)
		for _, p := range resp.Products {
			assert.Contains(t, p.Leads, catalog.Lead050)
		}
	})
}

func TestCatalogService_Featured(t *testing.T) {
	svc, _ := newCatalogService()

	assert.Len(t, svc.Featured("fr", 3), 3)
	assert.Len(t, svc.Featured("fr", 1000), len(catalog.MustDefault().All()))
}

func TestCatalogService_Product(t *testing.T) {
	svc, _ := newCatalogService()

	tests := []struct {
		name     string
		lead     string
		size     string
		wantLead catalog.LeadEquivalence
		wantSize catalog.Size
	}{
		{name: "default selection", wantLead: catalog.Lead025, wantSize: catalog.SizeM},
		{name: "grade keeps offered size", lead: "0,35 mm Pb", wantLead: catalog.Lead035, wantSize: catalog.SizeM},
		{name: "size offered at grade", lead: "0,35 mm Pb", size: "XXL", wantLead: catalog.Lead035, wantSize: catalog.SizeXXL},
		{name: "size not offered at grade", lead: "0,50 mm Pb", size: "S", wantLead: catalog.Lead050, wantSize: catalog.SizeM},
		{name: "unknown grade", lead: "1 mm Pb", size: "L", wantLead: catalog.Lead025, wantSize: catalog.SizeL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Product("fr", "tablier-plombe-premium", tt.lead, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLead, resp.SelectedLead)
			assert.Equal(t, tt.wantSize, resp.SelectedSize)
			assert.Contains(t, resp.QuoteURL, "/fr/devis?product=tablier-plombe-premium")
			assert.Contains(t, resp.QuoteURL, "size="+string(tt.wantSize))

			selected := 0
			for _, v := range resp.Variants {
				if v.Selected {
					selected++
					assert.Equal(t, tt.wantLead, v.Lead)
					assert.Equal(t, v.Sizes, resp.Sizes)
				}
			}
			assert.Equal(t, 1, selected)
		})
	}
}

func TestCatalogService_ProductLocalized(t *testing.T) {
	svc, _ := newCatalogService()

	fr, err := svc.Product("fr", "protege-thyroide", "", "")
	require.NoError(t, err)
	en, err := svc.Product("en", "protege-thyroide", "", "")
	require.NoError(t, err)

	assert.Equal(t, "/en/quote?product=protege-thyroide&pb=0%2C50+mm+Pb&size=M", en.QuoteURL)
	assert.Equal(t, "/fr/produits/protege-thyroide", fr.URL)
	assert.Equal(t, "/en/products/protege-thyroide", en.URL)
	assert.NotEmpty(t, en.DatasheetURL)
}

func TestCatalogService_ProductNotFound(t *testing.T) {
	svc, _ := newCatalogService()

	_, err := svc.Product("fr", "unknown", "", "")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestCatalogService_DatasheetURL(t *testing.T) {
	svc, resolver := newCatalogService()
	ctx := context.Background()

	t.Run("resolves the grade sheet", func(t *testing.T) {
		resolver.On("URL", ctx, "datasheets/tablier-premium-035.pdf").
			Return("https://cdn.test/tablier-premium-035.pdf", nil).Once()

		url, err := svc.DatasheetURL(ctx, "tablier-plombe-premium", "0,35 mm Pb")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.test/tablier-premium-035.pdf", url)
	})

	t.Run("grade without sheet", func(t *testing.T) {
		_, err := svc.DatasheetURL(ctx, "tablier-plombe-leger", "0,35 mm Pb")
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("storage failure", func(t *testing.T) {
		resolver.On("URL", ctx, "datasheets/gants-025.pdf").Return("", errors.New("denied")).Once()

		_, err := svc.DatasheetURL(ctx, "gants-radioattenuants", "")
		assert.True(t, apperrors.Is(err, apperrors.ErrUnavailable))
	})

	resolver.AssertExpectations(t)
}
