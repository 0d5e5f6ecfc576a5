package services

import (
	"context"
	"strings"

	"github.com/radshield/radshield-web/internal/catalog"
	"github.com/radshield/radshield-web/internal/i18n"
	"github.com/radshield/radshield-web/internal/models"
	"github.com/radshield/radshield-web/internal/variant"
	apperrors "github.com/radshield/radshield-web/pkg/errors"
	"github.com/radshield/radshield-web/pkg/logger"
	"github.com/radshield/radshield-web/pkg/metrics"
	"github.com/radshield/radshield-web/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DatasheetResolver turns a technical sheet key into a downloadable URL
type DatasheetResolver interface {
	URL(ctx context.Context, key string) (string, error)
}

// CatalogService serves localized views of the product catalogue
type CatalogService struct {
	catalog    *catalog.Catalog
	datasheets DatasheetResolver
}

// NewCatalogService creates a new catalog service
func NewCatalogService(c *catalog.Catalog, datasheets DatasheetResolver) *CatalogService {
	return &CatalogService{
		catalog:    c,
		datasheets: datasheets,
	}
}

// Catalog exposes the underlying product index
func (s *CatalogService) Catalog() *catalog.Catalog {
	return s.catalog
}

// List returns the products matching q. Filter values outside the
// enumerations are ignored rather than rejected.
func (s *CatalogService) List(locale string, q models.CatalogQuery) *models.CatalogResponse {
	f := catalog.Filter{
		Query:  strings.TrimSpace(q.Query),
		Locale: locale,
	}
	if c, ok := catalog.ParseCategory(q.Category); ok {
		f.Category = c
	}
	if l, ok := catalog.ParseLeadEquivalence(q.Lead); ok {
		f.Lead = l
	}
	if sz, ok := catalog.ParseSize(q.Size); ok {
		f.Size = sz
	}
	order := catalog.ParseSortOrder(q.Sort)

	products := s.catalog.Filter(f, order)
	metrics.CatalogueQueries.WithLabelValues(string(order)).Inc()

	resp := &models.CatalogResponse{
		Products: make([]models.ProductSummary, 0, len(products)),
		Total:    len(products),
		Facets:   s.catalog.Facets(),
		Sort:     string(order),
	}
	for _, p := range products {
		resp.Products = append(resp.Products, summarize(locale, p))
	}
	return resp
}

// Featured returns the first n products in catalogue order
func (s *CatalogService) Featured(locale string, n int) []models.ProductSummary {
	all := s.catalog.All()
	if n > len(all) {
		n = len(all)
	}
	out := make([]models.ProductSummary, 0, n)
	for _, p := range all[:n] {
		out = append(out, summarize(locale, p))
	}
	return out
}

// Product returns the detail view of slug with the selection resolved from
// the pb and size parameters. An unknown grade keeps the default selection;
// a size not offered at the selected grade is ignored.
func (s *CatalogService) Product(locale, slug, lead, size string) (*models.ProductDetailResponse, error) {
	p, ok := s.catalog.BySlug(slug)
	if !ok {
		return nil, apperrors.NotFoundError("product")
	}

	sel := variant.NewSelection(p)
	if l, ok := catalog.ParseLeadEquivalence(lead); ok {
		if _, offered := variant.VariantForLead(p, l); offered {
			sel = variant.OnLeadChanged(p, sel, l)
		}
	}
	if sz, ok := catalog.ParseSize(size); ok {
		sel, _ = variant.OnSizeChanged(p, sel, sz)
	}

	metrics.ProductViews.WithLabelValues(p.Slug).Inc()
	return s.detail(locale, p, sel), nil
}

// DatasheetURL resolves the technical sheet of the pb grade of a product
func (s *CatalogService) DatasheetURL(ctx context.Context, slug, lead string) (string, error) {
	p, ok := s.catalog.BySlug(slug)
	if !ok {
		return "", apperrors.NotFoundError("product")
	}
	l, ok := catalog.ParseLeadEquivalence(lead)
	if !ok {
		l = variant.DefaultLead(p)
	}
	v, ok := variant.VariantForLead(p, l)
	if !ok || v.TechSheetKey == "" {
		return "", apperrors.NotFoundError("datasheet")
	}

	ctx, span := tracing.StartSpan(ctx, "datasheet.resolve", attribute.String("key", v.TechSheetKey))
	url, err := s.datasheets.URL(ctx, v.TechSheetKey)
	tracing.End(span, err)
	if err != nil {
		logger.Error("Failed to resolve datasheet",
			zap.String("product", p.Slug),
			zap.String("key", v.TechSheetKey),
			zap.Error(err))
		return "", apperrors.UnavailableError("datasheet storage", err)
	}
	return url, nil
}

func (s *CatalogService) detail(locale string, p *catalog.Product, sel variant.Selection) *models.ProductDetailResponse {
	resp := &models.ProductDetailResponse{
		ProductSummary: summarize(locale, p),
		SelectedLead:   sel.Lead,
		SelectedSize:   sel.Size,
		QuoteURL:       variant.QuoteLink(i18n.Path(locale, i18n.PageQuote), p, sel),
	}

	for _, spec := range p.Specs {
		resp.Specs = append(resp.Specs, models.SpecView{
			Label: spec.Label.In(locale),
			Value: spec.Value.In(locale),
		})
	}
	for _, h := range p.Highlights {
		resp.Highlights = append(resp.Highlights, h.In(locale))
	}

	for _, v := range p.Variants {
		selected := v.Lead == sel.Lead
		resp.Variants = append(resp.Variants, models.VariantView{
			Lead:     v.Lead,
			Sizes:    v.Sizes,
			Selected: selected,
			HasSheet: v.TechSheetKey != "",
		})
		if selected {
			resp.Sizes = v.Sizes
			if v.TechSheetKey != "" {
				resp.DatasheetURL = DatasheetPath(p.Slug, v.Lead)
			}
		}
	}
	return resp
}

// DatasheetPath is the redirect endpoint serving the sheet of a grade
func DatasheetPath(slug string, lead catalog.LeadEquivalence) string {
	return "/api/v1/products/" + slug + "/datasheet?" + variant.ToQueryParams("", lead, "")
}

func summarize(locale string, p *catalog.Product) models.ProductSummary {
	return models.ProductSummary{
		Slug:     p.Slug,
		Title:    p.Title.In(locale),
		Summary:  p.Summary.In(locale),
		Category: p.Category,
		Leads:    p.Leads(),
		Image:    p.Image,
		URL:      i18n.ProductPath(locale, p.Slug),
	}
}
