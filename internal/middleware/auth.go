package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/radshield/radshield-web/pkg/logger"
	"go.uber.org/zap"
)

// MetricsTokenHeader carries the scrape token of the metrics endpoint
const MetricsTokenHeader = "X-Metrics-Token"

// MetricsAuthMiddleware guards the metrics endpoint with a static token sent
// either in MetricsTokenHeader or as a Bearer token. An empty token disables
// the check.
func MetricsAuthMiddleware(validToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if validToken == "" {
			c.Next()
			return
		}

		token := c.GetHeader(MetricsTokenHeader)
		if token == "" {
			token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}

		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(validToken)) != 1 {
			logger.Warn("Invalid metrics token",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing metrics token"})
			c.Abort()
			return
		}

		c.Next()
	}
}
