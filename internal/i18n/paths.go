package i18n

// Page identifies a site page independently of the locale
type Page string

const (
	PageHome     Page = "home"
	PageProducts Page = "products"
	PageServices Page = "services"
	PageAbout    Page = "about"
	PageContact  Page = "contact"
	PageQuote    Page = "quote"
	PageLegal    Page = "legal"
	PagePrivacy  Page = "privacy"
)

// Pages lists every page with a localized path
var Pages = []Page{PageHome, PageProducts, PageServices, PageAbout, PageContact, PageQuote, PageLegal, PagePrivacy}

var segments = map[string]map[Page]string{
	FR: {
		PageHome:     "",
		PageProducts: "produits",
		PageServices: "services",
		PageAbout:    "a-propos",
		PageContact:  "contact",
		PageQuote:    "devis",
		PageLegal:    "mentions-legales",
		PagePrivacy:  "confidentialite",
	},
	EN: {
		PageHome:     "",
		PageProducts: "products",
		PageServices: "services",
		PageAbout:    "about",
		PageContact:  "contact",
		PageQuote:    "quote",
		PageLegal:    "legal",
		PagePrivacy:  "privacy",
	},
}

// Segment returns the URL segment of page in locale
func Segment(locale string, page Page) string {
	if s, ok := segments[locale]; ok {
		return s[page]
	}
	return segments[FR][page]
}

// Path returns the absolute path of page in locale, e.g. "/fr/devis"
func Path(locale string, page Page) string {
	if !IsSupported(locale) {
		locale = FR
	}
	seg := Segment(locale, page)
	if seg == "" {
		return "/" + locale
	}
	return "/" + locale + "/" + seg
}

// ProductPath returns the detail page path of a product
func ProductPath(locale, slug string) string {
	return Path(locale, PageProducts) + "/" + slug
}
