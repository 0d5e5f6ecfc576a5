package models

import "github.com/radshield/radshield-web/internal/catalog"

// CatalogQuery is the query string of the catalogue listing
type CatalogQuery struct {
	Category string `form:"category" binding:"omitempty,max=40"`
	Lead     string `form:"pb" binding:"omitempty,max=20"`
	Size     string `form:"size" binding:"omitempty,max=4"`
	Query    string `form:"q" binding:"omitempty,max=100"`
	Sort     string `form:"sort" binding:"omitempty,max=20"`
}

// ProductSummary is a catalogue listing entry in one locale
type ProductSummary struct {
	Slug     string                    `json:"slug"`
	Title    string                    `json:"title"`
	Summary  string                    `json:"summary"`
	Category catalog.Category          `json:"category"`
	Leads    []catalog.LeadEquivalence `json:"leads"`
	Image    string                    `json:"image,omitempty"`
	URL      string                    `json:"url"`
}

// CatalogResponse is the filtered catalogue listing
type CatalogResponse struct {
	Products []ProductSummary `json:"products"`
	Total    int              `json:"total"`
	Facets   []catalog.Facet  `json:"facets"`
	Sort     string           `json:"sort"`
}

// SpecView is a localized specification line
type SpecView struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// VariantView is one lead grade with its sizes
type VariantView struct {
	Lead     catalog.LeadEquivalence `json:"pb"`
	Sizes    []catalog.Size          `json:"sizes"`
	Selected bool                    `json:"selected"`
	HasSheet bool                    `json:"hasDatasheet"`
}

// ProductDetailResponse is a product page in one locale with the current selection
type ProductDetailResponse struct {
	ProductSummary
	Specs        []SpecView              `json:"specs,omitempty"`
	Highlights   []string                `json:"highlights,omitempty"`
	Variants     []VariantView           `json:"variants"`
	SelectedLead catalog.LeadEquivalence `json:"selectedPb"`
	SelectedSize catalog.Size            `json:"selectedSize,omitempty"`
	Sizes        []catalog.Size          `json:"sizes"`
	QuoteURL     string                  `json:"quoteUrl"`
	DatasheetURL string                  `json:"datasheetUrl,omitempty"`
}
