package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/radshield/radshield-web/internal/catalog"
	"github.com/radshield/radshield-web/internal/i18n"
	"github.com/radshield/radshield-web/internal/middleware"
	"github.com/radshield/radshield-web/internal/models"
	"github.com/radshield/radshield-web/internal/quote"
	"github.com/radshield/radshield-web/internal/seo"
	"github.com/radshield/radshield-web/internal/services"
	"github.com/radshield/radshield-web/internal/variant"
	"github.com/radshield/radshield-web/internal/web"
	apperrors "github.com/radshield/radshield-web/pkg/errors"
	"github.com/radshield/radshield-web/pkg/logger"
	"go.uber.org/zap"
)

const featuredCount = 6

var sortOrders = []catalog.SortOrder{
	catalog.SortFeatured,
	catalog.SortTitleAsc,
	catalog.SortTitleDesc,
	catalog.SortVariants,
}

type textItem struct {
	Title string
	Body  string
}

type textLink struct {
	Path  string
	Label string
}

type textPageData struct {
	Heading    string
	Paragraphs []string
	Items      []textItem
	CTA        *textLink
}

type productsPageData struct {
	Query      models.CatalogQuery
	Categories []option
	Leads      []option
	Sizes      []option
	Sorts      []option
	Result     *models.CatalogResponse
}

type productPageData struct {
	Product       *models.ProductDetailResponse
	CategoryLabel string
}

type contactPageData struct {
	Sent   bool
	Form   models.ContactRequest
	Errors map[string]string
}

type errorPageData struct {
	Status  int
	Message string
}

// PagesHandler renders the localized public pages. The locale comes from the
// route group.
type PagesHandler struct {
	site    *web.Site
	catalog services.CatalogServiceInterface
	contact services.ContactServiceInterface
}

// NewPagesHandler creates a new PagesHandler
func NewPagesHandler(site *web.Site, catalogService services.CatalogServiceInterface, contactService services.ContactServiceInterface) *PagesHandler {
	return &PagesHandler{
		site:    site,
		catalog: catalogService,
		contact: contactService,
	}
}

// Root redirects "/" to the home page in the negotiated locale
func (h *PagesHandler) Root(c *gin.Context) {
	locale := middleware.NegotiateLocale(c, i18n.FR)
	c.Redirect(http.StatusFound, i18n.Path(locale, i18n.PageHome))
}

// Home renders the landing page
func (h *PagesHandler) Home(c *gin.Context) {
	locale := middleware.GetLocale(c)
	page := h.site.Page(locale, i18n.PageHome, "")
	page.JSONLD = append(page.JSONLD, seo.OrganizationLD(
		h.site.BaseURL,
		h.site.Msgs.T(locale, "site.name"),
		h.site.Msgs.T(locale, "site.tagline"),
		locale,
	))
	page.Data = gin.H{
		"Featured": h.catalog.Featured(locale, featuredCount),
		"Services": h.serviceItems(locale),
	}
	c.HTML(http.StatusOK, web.TemplateHome, page)
}

// Services renders the services page, one entry per kind of need
func (h *PagesHandler) Services(c *gin.Context) {
	locale := middleware.GetLocale(c)
	h.text(c, i18n.PageServices, &textPageData{
		Heading:    h.site.Msgs.T(locale, "services.title"),
		Paragraphs: []string{h.site.Msgs.T(locale, "services.lead")},
		Items:      h.serviceItems(locale),
		CTA:        &textLink{Path: i18n.Path(locale, i18n.PageQuote), Label: h.site.Msgs.T(locale, "home.cta_quote")},
	})
}

// About renders the company page
func (h *PagesHandler) About(c *gin.Context) {
	h.textPage(c, i18n.PageAbout, "about")
}

// Legal renders the legal notice
func (h *PagesHandler) Legal(c *gin.Context) {
	h.textPage(c, i18n.PageLegal, "legal")
}

// Privacy renders the privacy policy
func (h *PagesHandler) Privacy(c *gin.Context) {
	h.textPage(c, i18n.PagePrivacy, "privacy")
}

// Products renders the filterable catalogue. Malformed filters fall back to
// the unfiltered listing.
func (h *PagesHandler) Products(c *gin.Context) {
	locale := middleware.GetLocale(c)
	msgs := h.site.Msgs

	var q models.CatalogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Debug("Ignoring invalid catalogue query", zap.Error(err))
		q = models.CatalogQuery{}
	}
	result := h.catalog.List(locale, q)

	d := &productsPageData{Query: q, Result: result}
	counts := make(map[catalog.Category]int, len(result.Facets))
	for _, f := range result.Facets {
		counts[f.Category] = f.Count
	}
	for _, cat := range catalog.Categories {
		d.Categories = append(d.Categories, option{
			Value:    string(cat),
			Label:    msgs.T(locale, "category."+string(cat)),
			Count:    counts[cat],
			Selected: string(cat) == q.Category,
		})
	}
	for _, l := range catalog.LeadEquivalences {
		d.Leads = append(d.Leads, option{Value: string(l), Label: string(l), Selected: string(l) == q.Lead})
	}
	for _, s := range catalog.Sizes {
		d.Sizes = append(d.Sizes, option{Value: string(s), Label: string(s), Selected: string(s) == q.Size})
	}
	for _, o := range sortOrders {
		d.Sorts = append(d.Sorts, option{
			Value:    string(o),
			Label:    msgs.T(locale, "sort."+string(o)),
			Selected: string(o) == result.Sort,
		})
	}

	page := h.site.Page(locale, i18n.PageProducts, "").WithTitle(msgs.T(locale, "products.title"))
	page.Description = msgs.T(locale, "products.lead")
	page.Data = d
	c.HTML(http.StatusOK, web.TemplateProducts, page)
}

// Product renders a product page with the pb and size query parameters
// resolved against its variants
func (h *PagesHandler) Product(c *gin.Context) {
	locale := middleware.GetLocale(c)
	slug := c.Param("slug")

	p, err := h.catalog.Product(locale, slug, c.Query(variant.ParamLead), c.Query(variant.ParamSize))
	if err != nil {
		h.renderError(c, locale, statusOf(err), err)
		return
	}

	categoryLabel := h.site.Msgs.T(locale, "category."+string(p.Category))
	page := h.site.Page(locale, i18n.PageProducts, "/"+p.Slug).WithTitle(p.Title)
	page.Description = p.Summary
	page.JSONLD = append(page.JSONLD, seo.ProductLD(h.site.BaseURL, h.site.Msgs.T(locale, "site.name"), categoryLabel, p, locale))
	page.Data = &productPageData{Product: p, CategoryLabel: categoryLabel}
	c.HTML(http.StatusOK, web.TemplateProduct, page)
}

// ContactForm renders the empty contact form
func (h *PagesHandler) ContactForm(c *gin.Context) {
	h.renderContact(c, http.StatusOK, &contactPageData{}, "", "")
}

// SubmitContact handles the contact form post
func (h *PagesHandler) SubmitContact(c *gin.Context) {
	locale := middleware.GetLocale(c)
	msgs := h.site.Msgs

	var req models.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		attachError(c, err)
		req.RecaptchaToken = ""
		h.renderContact(c, http.StatusBadRequest, &contactPageData{
			Form:   req,
			Errors: validationMap(ParseValidationErrors(err, msgs, locale)),
		}, "", "")
		return
	}

	resp, err := h.contact.SubmitContactForm(c.Request.Context(), locale, c.ClientIP(), &req)
	req.RecaptchaToken = ""
	switch {
	case err != nil:
		attachError(c, err)
		h.renderContact(c, http.StatusInternalServerError, &contactPageData{Form: req}, "error", msgs.T(locale, "contact.failed"))
	case !resp.Success && resp.Error == "captcha":
		h.renderContact(c, http.StatusBadRequest, &contactPageData{Form: req}, "error", msgs.T(locale, "contact.captcha"))
	case !resp.Success:
		h.renderContact(c, http.StatusBadGateway, &contactPageData{Form: req}, "error", msgs.T(locale, "contact.failed"))
	default:
		h.renderContact(c, http.StatusOK, &contactPageData{Sent: true}, "success", msgs.T(locale, "contact.sent"))
	}
}

// NotFound renders the 404 page, or a JSON error under /api
func (h *PagesHandler) NotFound(c *gin.Context) {
	path := c.Request.URL.Path
	if strings.HasPrefix(path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	locale := ""
	for _, l := range i18n.Locales {
		if path == "/"+l || strings.HasPrefix(path, "/"+l+"/") {
			locale = l
			break
		}
	}
	if locale == "" {
		locale = middleware.NegotiateLocale(c, i18n.FR)
	}
	h.renderError(c, locale, http.StatusNotFound, apperrors.NotFoundError("page"))
}

func (h *PagesHandler) renderContact(c *gin.Context, status int, d *contactPageData, flashKind, flash string) {
	locale := middleware.GetLocale(c)
	if d.Errors == nil {
		d.Errors = map[string]string{}
	}
	page := h.site.Page(locale, i18n.PageContact, "").WithTitle(h.site.Msgs.T(locale, "contact.title"))
	page.RecaptchaSiteKey = h.site.RecaptchaSiteKey
	if flash != "" {
		page.WithFlash(flashKind, flash)
	}
	page.Data = d
	c.HTML(status, web.TemplateContact, page)
}

func (h *PagesHandler) textPage(c *gin.Context, p i18n.Page, key string) {
	locale := middleware.GetLocale(c)
	h.text(c, p, &textPageData{
		Heading:    h.site.Msgs.T(locale, key+".title"),
		Paragraphs: paragraphs(h.site.Msgs.T(locale, key+".body")),
	})
}

func (h *PagesHandler) text(c *gin.Context, p i18n.Page, d *textPageData) {
	locale := middleware.GetLocale(c)
	page := h.site.Page(locale, p, "").WithTitle(d.Heading)
	page.Data = d
	c.HTML(http.StatusOK, web.TemplateText, page)
}

func (h *PagesHandler) serviceItems(locale string) []textItem {
	items := make([]textItem, 0, len(quote.Needs))
	for _, n := range quote.Needs {
		items = append(items, textItem{
			Title: h.site.Msgs.T(locale, "need."+string(n)),
			Body:  h.site.Msgs.T(locale, "need."+string(n)+".hint"),
		})
	}
	return items
}

func (h *PagesHandler) renderError(c *gin.Context, locale string, status int, err error) {
	attachError(c, err)

	key := "page.error"
	if errors.Is(err, apperrors.ErrNotFound) {
		key = "page.not_found"
		if status == http.StatusNotFound && strings.Contains(err.Error(), "product") {
			key = "product.not_found"
		}
	}

	page := h.site.Page(locale, i18n.PageHome, "").WithTitle(h.site.Msgs.T(locale, key))
	page.Data = &errorPageData{Status: status, Message: h.site.Msgs.T(locale, key)}
	c.HTML(status, web.TemplateError, page)
}

// paragraphs splits a message on blank lines
func paragraphs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
