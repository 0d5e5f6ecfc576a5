package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/radshield/radshield-web/pkg/httpclient"
	"github.com/radshield/radshield-web/pkg/logger"
	"go.uber.org/zap"
)

type apiAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type apiAttachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
}

type apiRequest struct {
	From        apiAddress      `json:"from"`
	To          []apiAddress    `json:"to"`
	ReplyTo     *apiAddress     `json:"reply_to,omitempty"`
	Subject     string          `json:"subject"`
	Text        string          `json:"text,omitempty"`
	HTML        string          `json:"html,omitempty"`
	Attachments []apiAttachment `json:"attachments,omitempty"`
}

// APISender posts messages as JSON to a transactional email provider
type APISender struct {
	url        string
	apiKey     string
	from       apiAddress
	httpClient httpclient.Client
}

// NewAPISender creates a sender for the provider endpoint at url
func NewAPISender(url, apiKey, from, fromName string, httpClient httpclient.Client) *APISender {
	return &APISender{
		url:        url,
		apiKey:     apiKey,
		from:       apiAddress{Email: from, Name: fromName},
		httpClient: httpClient,
	}
}

func (s *APISender) Provider() string { return "api" }

func (s *APISender) Send(ctx context.Context, msg *Message) error {
	start := time.Now()

	payload := apiRequest{
		From:    s.from,
		Subject: msg.Subject,
		Text:    msg.Text,
		HTML:    msg.HTML,
	}
	for _, to := range msg.To {
		payload.To = append(payload.To, apiAddress{Email: to})
	}
	if msg.ReplyTo != "" {
		payload.ReplyTo = &apiAddress{Email: msg.ReplyTo}
	}
	for _, a := range msg.Attachments {
		payload.Attachments = append(payload.Attachments, apiAttachment{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Content:     base64.StdEncoding.EncodeToString(a.Data),
		})
	}

	err := s.post(ctx, payload)
	status, duration := observe(s.Provider(), start, err)
	logger.LogAPICall(ctx, "mail_api", "send", status, duration,
		zap.String("subject", msg.Subject),
		zap.Int("recipients", len(msg.To)),
		zap.Int("attachments", len(msg.Attachments)),
	)
	return err
}

func (s *APISender) post(ctx context.Context, payload apiRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512)) //nolint:errcheck // best-effort detail
		return fmt.Errorf("mail provider returned status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	return nil
}
