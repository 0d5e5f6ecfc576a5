package handlers

import (
	"bufio"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogsHandler_ReceiveBrowserLogs(t *testing.T) {
	dir := t.TempDir()
	h := NewLogsHandler(dir)
	router := gin.New()
	router.POST("/api/v1/logs", h.ReceiveBrowserLogs)

	body := `{"logs":[
		{"timestamp":"2026-10-16T08:00:00Z","level":"ERROR","message":"x is undefined","context":{"url":"/fr/devis","level":"spoofed"}},
		{"timestamp":"2026-10-16T08:00:01Z","level":"fatal","message":"odd level"}
	]}`
	w := newClient(router).do(http.MethodPost, "/api/v1/logs", strings.NewReader(body), "text/plain;charset=UTF-8")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"received":2}`, w.Body.String())

	f, err := os.Open(filepath.Join(dir, browserLogFile))
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "error", lines[0]["level"])
	assert.Equal(t, "browser", lines[0]["service"])
	assert.Equal(t, "/fr/devis", lines[0]["url"])
	assert.Equal(t, "info", lines[1]["level"])
}

func TestLogsHandler_Rejects(t *testing.T) {
	router := gin.New()
	router.POST("/api/v1/logs", NewLogsHandler(t.TempDir()).ReceiveBrowserLogs)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "oops"},
		{"no logs", `{"logs":[]}`},
		{"missing message", `{"logs":[{"level":"error"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newClient(router).json(http.MethodPost, "/api/v1/logs", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
