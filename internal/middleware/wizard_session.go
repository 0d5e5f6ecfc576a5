package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/radshield/radshield-web/pkg/jwt"
)

const (
	// WizardSessionCookieName is the name of the quote session cookie
	WizardSessionCookieName = "quote_session"

	// WizardIDContextKey is the key used to store the wizard id in context
	WizardIDContextKey = "wizard_id"
)

// WizardSessionMiddleware reads the quote session cookie. It never blocks the
// request: without a valid cookie the context simply carries no wizard id and
// the handler decides whether to start a new wizard. Invalid cookies are cleared.
func WizardSessionMiddleware(tokenManager *jwt.TokenManager, cookieDomain string, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(WizardSessionCookieName)
		if err != nil || cookie == "" {
			c.Next()
			return
		}

		claims, err := tokenManager.ValidateToken(cookie)
		if err != nil {
			reason := "invalid"
			if errors.Is(err, jwt.ErrExpiredToken) {
				reason = "expired"
			}
			_ = c.Error(fmt.Errorf("%s quote session token: %w", reason, err)) //nolint:errcheck
			ClearWizardCookie(c, cookieDomain, cookieSecure)
			c.Next()
			return
		}

		c.Set(WizardIDContextKey, claims.WizardID)
		c.Next()
	}
}

// GetWizardID returns the wizard id of the current session, if any
func GetWizardID(c *gin.Context) (string, bool) {
	id := c.GetString(WizardIDContextKey)
	return id, id != ""
}

// SetWizardCookie stores a session token and exposes the id to later handlers
// of the same request
func SetWizardCookie(c *gin.Context, wizardID, token string, ttlSeconds int, domain string, secure bool) {
	c.Set(WizardIDContextKey, wizardID)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		WizardSessionCookieName,
		token,
		ttlSeconds,
		"/",
		domain,
		secure,
		true, // HttpOnly
	)
}

// ClearWizardCookie removes the session cookie
func ClearWizardCookie(c *gin.Context, domain string, secure bool) {
	c.Set(WizardIDContextKey, "")
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		WizardSessionCookieName,
		"",
		-1,
		"/",
		domain,
		secure,
		true, // HttpOnly
	)
}
