// Package seo builds schema.org JSON-LD blocks and hreflang alternates for
// the public pages.
package seo

import (
	"strings"

	"github.com/radshield/radshield-web/internal/i18n"
	"github.com/radshield/radshield-web/internal/models"
)

const schemaContext = "https://schema.org"

// Brand is a schema.org Brand
type Brand struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// PropertyValue is a schema.org PropertyValue
type PropertyValue struct {
	Type  string `json:"@type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Product is a schema.org Product. Prices are quoted on request so no Offer is emitted.
type Product struct {
	Context            string          `json:"@context"`
	Type               string          `json:"@type"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	SKU                string          `json:"sku"`
	Category           string          `json:"category,omitempty"`
	Image              string          `json:"image,omitempty"`
	URL                string          `json:"url"`
	Brand              Brand           `json:"brand"`
	InLanguage         string          `json:"inLanguage"`
	AdditionalProperty []PropertyValue `json:"additionalProperty,omitempty"`
}

// Organization is a schema.org Organization
type Organization struct {
	Context     string        `json:"@context"`
	Type        string        `json:"@type"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url"`
	Logo        string        `json:"logo,omitempty"`
	Contact     *ContactPoint `json:"contactPoint,omitempty"`
}

// ContactPoint is a schema.org ContactPoint
type ContactPoint struct {
	Type              string   `json:"@type"`
	ContactType       string   `json:"contactType"`
	URL               string   `json:"url"`
	AvailableLanguage []string `json:"availableLanguage"`
}

// Alternate is one language version of a page
type Alternate struct {
	Locale string
	URL    string
}

// Absolute joins baseURL and path
func Absolute(baseURL, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

// Alternates returns the absolute URL of page in every locale. suffix is
// appended to the page path, e.g. "/<slug>" for a product.
func Alternates(baseURL string, page i18n.Page, suffix string) []Alternate {
	out := make([]Alternate, 0, len(i18n.Locales))
	for _, l := range i18n.Locales {
		out = append(out, Alternate{Locale: l, URL: Absolute(baseURL, i18n.Path(l, page)+suffix)})
	}
	return out
}

// ProductLD describes a product detail page. Every offered grade is listed
// so search engines see the full range, not only the current selection.
func ProductLD(baseURL, brand, category string, p *models.ProductDetailResponse, locale string) Product {
	ld := Product{
		Context:     schemaContext,
		Type:        "Product",
		Name:        p.Title,
		Description: p.Summary,
		SKU:         p.Slug,
		Category:    category,
		URL:         Absolute(baseURL, p.URL),
		Brand:       Brand{Type: "Brand", Name: brand},
		InLanguage:  locale,
	}
	if p.Image != "" {
		ld.Image = Absolute(baseURL, p.Image)
	}

	for _, s := range p.Specs {
		ld.AdditionalProperty = append(ld.AdditionalProperty, PropertyValue{Type: "PropertyValue", Name: s.Label, Value: s.Value})
	}
	leads := make([]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		leads = append(leads, string(v.Lead))
	}
	if len(leads) > 0 {
		ld.AdditionalProperty = append(ld.AdditionalProperty, PropertyValue{
			Type:  "PropertyValue",
			Name:  "leadEquivalence",
			Value: strings.Join(leads, ", "),
		})
	}
	return ld
}

// OrganizationLD describes the company on the home page
func OrganizationLD(baseURL, name, description, locale string) Organization {
	return Organization{
		Context:     schemaContext,
		Type:        "Organization",
		Name:        name,
		Description: description,
		URL:         Absolute(baseURL, i18n.Path(locale, i18n.PageHome)),
		Logo:        Absolute(baseURL, "/static/logo.svg"),
		Contact: &ContactPoint{
			Type:              "ContactPoint",
			ContactType:       "sales",
			URL:               Absolute(baseURL, i18n.Path(locale, i18n.PageContact)),
			AvailableLanguage: []string{"French", "English"},
		},
	}
}
