package trigger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/radshield/radshield-web/pkg/httpclient"
	"github.com/radshield/radshield-web/pkg/logger"
	"go.uber.org/zap"
)

const callTimeout = 10 * time.Second

// Event is posted as JSON to a trigger URL. Payload carries no personal data
// beyond what the receiving CRM already gets by email.
type Event struct {
	Type      string            `json:"type"`
	Reference string            `json:"reference"`
	Locale    string            `json:"locale,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
	SentAt    time.Time         `json:"sent_at"`
}

// CallAsync posts event to triggerURL in the background.
// Failures are logged but don't block the operation.
func CallAsync(triggerURL string, event Event, httpClient httpclient.Client) {
	if triggerURL == "" {
		// No trigger URL configured, skip silently
		return
	}

	go Call(triggerURL, event, httpClient)
}

// Call posts event to triggerURL and reports whether the receiver accepted it
func Call(triggerURL string, event Event, httpClient httpclient.Client) bool {
	if event.SentAt.IsZero() {
		event.SentAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to encode trigger event", zap.Error(err), zap.String("type", event.Type))
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, triggerURL, bytes.NewReader(body))
	if err != nil {
		logger.Error("Failed to build trigger request", zap.Error(err), zap.String("url", triggerURL))
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Info("Calling trigger URL",
		zap.String("url", triggerURL),
		zap.String("type", event.Type),
		zap.String("reference", event.Reference))

	resp, err := httpClient.Do(req)
	if err != nil {
		logger.Error("Failed to call trigger URL",
			zap.Error(err),
			zap.String("url", triggerURL),
			zap.String("reference", event.Reference))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		logger.Info("Trigger URL called successfully",
			zap.String("url", triggerURL),
			zap.String("reference", event.Reference),
			zap.Int("status_code", resp.StatusCode))
		return true
	}

	logger.Warn("Trigger URL returned non-success status",
		zap.String("url", triggerURL),
		zap.String("reference", event.Reference),
		zap.Int("status_code", resp.StatusCode))
	return false
}
