package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler_Healthcheck(t *testing.T) {
	tests := []struct {
		name     string
		checks   map[string]HealthCheck
		status   int
		expected string
	}{
		{
			name:     "no checks",
			status:   http.StatusOK,
			expected: `{"status":"ok"}`,
		},
		{
			name: "all healthy",
			checks: map[string]HealthCheck{
				"catalog": func() bool { return true },
				"mailer":  func() bool { return true },
			},
			status:   http.StatusOK,
			expected: `{"status":"ok"}`,
		},
		{
			name: "mailer circuit open",
			checks: map[string]HealthCheck{
				"catalog": func() bool { return true },
				"mailer":  func() bool { return false },
			},
			status:   http.StatusServiceUnavailable,
			expected: `{"status":"unavailable","failing":["mailer"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.checks)
			router := gin.New()
			router.GET("/healthcheck", handler.Healthcheck)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/healthcheck", http.NoBody)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "no-cache, no-store, max-age=0, must-revalidate", w.Header().Get("Cache-Control"))
			assert.JSONEq(t, tt.expected, w.Body.String())
		})
	}
}
