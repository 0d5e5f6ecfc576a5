package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/radshield/radshield-web/internal/i18n"
)

// LocaleContextKey holds the resolved locale of the request
const LocaleContextKey = "locale"

// LocaleQueryParam overrides content negotiation on API calls
const LocaleQueryParam = "lang"

// FixedLocaleMiddleware pins the locale of a route group such as /fr or /en
func FixedLocaleMiddleware(locale string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(LocaleContextKey, locale)
		c.Header("Content-Language", locale)
		c.Next()
	}
}

// NegotiateLocaleMiddleware resolves the locale from the lang query
// parameter, then the Accept-Language header, then fallback.
func NegotiateLocaleMiddleware(fallback string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(LocaleContextKey, NegotiateLocale(c, fallback))
		c.Next()
	}
}

// NegotiateLocale returns the best supported locale for the request
func NegotiateLocale(c *gin.Context, fallback string) string {
	if lang := c.Query(LocaleQueryParam); i18n.IsSupported(lang) {
		return lang
	}
	return i18n.Match(c.GetHeader("Accept-Language"), fallback)
}

// GetLocale returns the locale set by one of the locale middlewares, or French
func GetLocale(c *gin.Context) string {
	if locale := c.GetString(LocaleContextKey); locale != "" {
		return locale
	}
	return i18n.FR
}
