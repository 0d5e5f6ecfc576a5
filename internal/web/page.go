package web

import (
	"time"

	"github.com/radshield/radshield-web/internal/i18n"
	"github.com/radshield/radshield-web/internal/seo"
)

// navPages are the header links, in order
var navPages = []i18n.Page{i18n.PageHome, i18n.PageProducts, i18n.PageServices, i18n.PageAbout, i18n.PageContact}

// footerPages are the footer links, in order
var footerPages = []i18n.Page{i18n.PageLegal, i18n.PagePrivacy, i18n.PageContact}

// Site holds what every page needs to render the layout
type Site struct {
	Msgs             *i18n.Catalog
	BaseURL          string
	RecaptchaSiteKey string
}

// NavItem is a header or footer link
type NavItem struct {
	Label  string
	Path   string
	Active bool
}

// Page is the data passed to every template
type Page struct {
	Locale           string
	Name             i18n.Page
	Title            string
	Description      string
	Canonical        string
	Alternates       []seo.Alternate
	Switch           seo.Alternate
	Nav              []NavItem
	Footer           []NavItem
	JSONLD           []any
	RecaptchaSiteKey string
	Year             int
	Flash            string
	FlashKind        string
	Data             any

	msgs *i18n.Catalog
}

// Page prepares the layout data of page in locale. suffix is appended to the
// localized page path, e.g. "/<slug>" on a product page.
func (s *Site) Page(locale string, page i18n.Page, suffix string) *Page {
	if !i18n.IsSupported(locale) {
		locale = i18n.FR
	}
	other := i18n.Other(locale)

	p := &Page{
		Locale:      locale,
		Name:        page,
		Title:       s.Msgs.T(locale, "site.name"),
		Description: s.Msgs.T(locale, "site.tagline"),
		Canonical:   seo.Absolute(s.BaseURL, i18n.Path(locale, page)+suffix),
		Alternates:  seo.Alternates(s.BaseURL, page, suffix),
		Switch:      seo.Alternate{Locale: other, URL: i18n.Path(other, page) + suffix},
		Year:        time.Now().Year(),
		msgs:        s.Msgs,
	}
	for _, np := range navPages {
		p.Nav = append(p.Nav, NavItem{
			Label:  s.Msgs.T(locale, "nav."+string(np)),
			Path:   i18n.Path(locale, np),
			Active: np == page,
		})
	}
	for _, fp := range footerPages {
		p.Footer = append(p.Footer, NavItem{
			Label: s.Msgs.T(locale, "nav."+string(fp)),
			Path:  i18n.Path(locale, fp),
		})
	}
	return p
}

// WithTitle sets the document title as "<title> | <site name>"
func (p *Page) WithTitle(title string) *Page {
	if title != "" {
		p.Title = title + " | " + p.msgs.T(p.Locale, "site.name")
	}
	return p
}

// WithFlash sets a one-off status message; kind is "success" or "error"
func (p *Page) WithFlash(kind, message string) *Page {
	p.Flash = message
	p.FlashKind = kind
	return p
}

// T translates key in the page locale
func (p *Page) T(key string, args ...any) string {
	return p.msgs.T(p.Locale, key, args...)
}

// Path returns the localized path of a page name such as "quote"
func (p *Page) Path(page string) string {
	return i18n.Path(p.Locale, i18n.Page(page))
}

// Number formats n with the locale's digit grouping
func (p *Page) Number(n int) string {
	return p.msgs.Number(p.Locale, n)
}
