package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/radshield/radshield-web/pkg/logger"
	"go.uber.org/zap"
)

const browserLogFile = "browser.log"

var browserLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// LogsHandler stores script errors reported by the site's pages
type LogsHandler struct {
	logDir string
	mu     sync.Mutex
}

type LogEntry struct {
	Timestamp string         `json:"timestamp" binding:"max=40"`
	Level     string         `json:"level" binding:"required,max=10"`
	Message   string         `json:"message" binding:"required,max=2000"`
	Context   map[string]any `json:"context,omitempty"`
}

type LogBatchRequest struct {
	Logs []LogEntry `json:"logs" binding:"required,max=100,dive"`
}

func NewLogsHandler(logDir string) *LogsHandler {
	return &LogsHandler{
		logDir: logDir,
	}
}

// ReceiveBrowserLogs handles POST /api/v1/logs. The pages send it with
// navigator.sendBeacon, so the content type is not checked.
func (h *LogsHandler) ReceiveBrowserLogs(c *gin.Context) {
	var req LogBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if len(req.Logs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No logs provided"})
		return
	}

	if err := h.writeLogsToFile(req.Logs, c.Request.UserAgent()); err != nil {
		logger.Error("Failed to write browser logs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write logs"})
		return
	}

	logger.Debug("Received browser logs", zap.Int("count", len(req.Logs)))
	c.JSON(http.StatusOK, gin.H{"success": true, "received": len(req.Logs)})
}

func (h *LogsHandler) writeLogsToFile(logs []LogEntry, userAgent string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.MkdirAll(h.logDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(h.logDir, browserLogFile)
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open browser log file: %w", err)
	}
	defer f.Close()

	// One JSON line per entry, shaped like the server log
	encoder := json.NewEncoder(f)
	for _, entry := range logs {
		level := strings.ToLower(entry.Level)
		if !browserLevels[level] {
			level = "info"
		}

		line := make(map[string]any, len(entry.Context)+5)
		for k, v := range entry.Context {
			line[k] = v
		}
		line["ts"] = entry.Timestamp
		line["level"] = level
		line["msg"] = entry.Message
		line["service"] = "browser"
		if userAgent != "" {
			line["user_agent"] = userAgent
		}

		if err := encoder.Encode(line); err != nil {
			return fmt.Errorf("failed to encode log entry: %w", err)
		}
	}

	return nil
}
