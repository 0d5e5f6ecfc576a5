package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/radshield/radshield-web/pkg/logger"
	"github.com/radshield/radshield-web/pkg/metrics"
	"go.uber.org/zap"
)

// redactedQueryParams never reach the request log. Quote deep links carry
// product, pb and size only; contact details travel in bodies.
var redactedQueryParams = map[string]bool{
	"token": true, "key": true, "secret": true, "password": true,
	"email": true, "phone": true, "name": true,
}

// ObservabilityMiddleware records request metrics and writes one log line per request
func ObservabilityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		metrics.ActiveRequests.WithLabelValues(method).Inc()
		defer metrics.ActiveRequests.WithLabelValues(method).Dec()

		c.Next()

		// Label by route template so product slugs and locales don't explode cardinality
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		duration := metrics.MeasureDuration(start)
		code := strconv.Itoa(status)

		metrics.HTTPRequestDuration.WithLabelValues(method, route, code).Observe(duration)
		metrics.HTTPRequestTotal.WithLabelValues(method, route, code).Inc()

		fields := requestFields(c)
		if status >= 400 {
			fields = append(fields, failureFields(c)...)
		}
		logger.LogHTTPRequest(c.Request.Context(), method, c.Request.URL.Path, status, duration, fields...)
	}
}

func requestFields(c *gin.Context) []zap.Field {
	fields := []zap.Field{
		zap.String("client_ip", c.ClientIP()),
		zap.String("user_agent", c.Request.UserAgent()),
		zap.Int("response_size", c.Writer.Size()),
	}
	if locale := c.GetString(LocaleContextKey); locale != "" {
		fields = append(fields, zap.String("locale", locale))
	}
	if id, ok := GetWizardID(c); ok {
		fields = append(fields, zap.String("wizard_id", id))
	}
	return fields
}

// failureFields adds what is needed to replay a failed request
func failureFields(c *gin.Context) []zap.Field {
	var fields []zap.Field

	if len(c.Params) > 0 {
		params := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}
		fields = append(fields, zap.Any("route_params", params))
	}

	query := map[string]string{}
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 && !redactedQueryParams[strings.ToLower(k)] {
			query[k] = v[0]
		}
	}
	if len(query) > 0 {
		fields = append(fields, zap.Any("query_params", query))
	}

	if len(c.Errors) > 0 {
		fields = append(fields, zap.String("error", c.Errors.String()))
	}
	return fields
}
