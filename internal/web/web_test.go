package web

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/radshield/radshield-web/internal/i18n"
	"github.com/radshield/radshield-web/internal/models"
	"github.com/radshield/radshield-web/internal/seo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSite() *Site {
	return &Site{Msgs: i18n.Default(), BaseURL: "https://radshield.fr"}
}

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	for _, name := range templateNames {
		assert.Contains(t, r.templates, name)
	}
}

func TestRenderer_Home(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	page := testSite().Page(i18n.EN, i18n.PageHome, "")
	page.JSONLD = append(page.JSONLD, seo.OrganizationLD("https://radshield.fr", "RadShield", "<b>shield</b>", i18n.EN))
	page.Data = map[string]any{
		"Featured": []models.ProductSummary{{Title: "Lead apron", URL: "/en/products/apron"}},
		"Services": []map[string]string{{"Title": "Rental", "Body": "Monthly rental"}},
	}

	w := httptest.NewRecorder()
	require.NoError(t, r.Instance(TemplateHome, page).Render(w))

	body := w.Body.String()
	assert.Contains(t, body, `<html lang="en">`)
	assert.Contains(t, body, `hreflang="fr" href="https://radshield.fr/fr"`)
	assert.Contains(t, body, `href="/fr"`)
	assert.Contains(t, body, "Lead apron")
	assert.Contains(t, body, `href="/en/quote"`)
	assert.Contains(t, body, `application/ld+json`)
	assert.NotContains(t, body, "<b>shield</b>")
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	page := testSite().Page(i18n.FR, i18n.PageHome, "")
	page.Data = map[string]any{"Status": 404, "Message": "Page introuvable."}

	w := httptest.NewRecorder()
	require.NoError(t, r.Instance("missing", page).Render(w))
	assert.Contains(t, w.Body.String(), "Page introuvable.")
}

func TestSite_Page(t *testing.T) {
	page := testSite().Page(i18n.FR, i18n.PageProducts, "/protege-thyroide").WithTitle("Protège-thyroïde")

	assert.Equal(t, "Protège-thyroïde | RadShield", page.Title)
	assert.Equal(t, "https://radshield.fr/fr/produits/protege-thyroide", page.Canonical)
	assert.Equal(t, "/en/products/protege-thyroide", page.Switch.URL)
	assert.Equal(t, "/fr/devis", page.Path("quote"))
	assert.Len(t, page.Alternates, 2)

	active := 0
	for _, n := range page.Nav {
		if n.Active {
			active++
			assert.Equal(t, "/fr/produits", n.Path)
		}
	}
	assert.Equal(t, 1, active)
}

func TestSite_PageUnsupportedLocale(t *testing.T) {
	page := testSite().Page("de", i18n.PageHome, "")
	assert.Equal(t, i18n.FR, page.Locale)
}

func TestStatic(t *testing.T) {
	f, err := Static().Open("site.css")
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Contains(t, string(data), ".wizard-actions")
}
