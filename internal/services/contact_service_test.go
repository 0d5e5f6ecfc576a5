package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/radshield/radshield-web/config"
	"github.com/radshield/radshield-web/internal/models"
	"github.com/radshield/radshield-web/internal/notify"
	"github.com/radshield/radshield-web/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func contactRequest() *models.ContactRequest {
	return &models.ContactRequest{
		Name:           " Paul Durand ",
		Email:          "paul@hopital.test",
		Company:        "CHU Nord",
		Message:        "Besoin de 12 tabliers.",
		RecaptchaToken: "token",
	}
}

func TestContactService_SubmitContactForm(t *testing.T) {
	sender := new(MockContactSender)
	svc := services.NewContactService(sender, &config.Config{}, new(MockHTTPClient))
	ctx := context.Background()

	sender.On("SendContact", ctx, mock.MatchedBy(func(msg *notify.ContactMessage) bool {
		return msg.Name == "Paul Durand" && msg.Locale == "fr" && msg.Company == "CHU Nord"
	})).Return(nil).Once()

	resp, err := svc.SubmitContactForm(ctx, "fr", "10.0.0.1", contactRequest())

	require.NoError(t, err)
	assert.True(t, resp.Success)
	sender.AssertExpectations(t)
}

func TestContactService_Honeypot(t *testing.T) {
	sender := new(MockContactSender)
	svc := services.NewContactService(sender, &config.Config{}, new(MockHTTPClient))

	req := contactRequest()
	req.Website = "http://spam.test"

	resp, err := svc.SubmitContactForm(context.Background(), "fr", "10.0.0.1", req)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	sender.AssertNotCalled(t, "SendContact", mock.Anything, mock.Anything)
}

func TestContactService_CaptchaError(t *testing.T) {
	sender := new(MockContactSender)
	verifier := new(MockCaptchaVerifier)
	svc := services.NewContactService(sender, &config.Config{}, new(MockHTTPClient)).WithVerifier(verifier)
	ctx := context.Background()

	verifier.On("Verify", ctx, "token", "10.0.0.1").Return(errors.New("invalid captcha")).Once()

	resp, err := svc.SubmitContactForm(ctx, "en", "10.0.0.1", contactRequest())

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "captcha", resp.Error)
	sender.AssertNotCalled(t, "SendContact", mock.Anything, mock.Anything)
	verifier.AssertExpectations(t)
}

func TestContactService_SendError(t *testing.T) {
	sender := new(MockContactSender)
	svc := services.NewContactService(sender, &config.Config{}, new(MockHTTPClient))

	sender.On("SendContact", mock.Anything, mock.Anything).Return(errors.New("smtp timeout")).Once()

	resp, err := svc.SubmitContactForm(context.Background(), "fr", "", contactRequest())

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "send", resp.Error)
}

func TestContactService_TriggersWebhook(t *testing.T) {
	sender := new(MockContactSender)
	client := new(MockHTTPClient)
	cfg := &config.Config{
		EventTriggers: config.EventTriggersConfig{ContactSubmittedTriggerURL: "https://crm.test/hook"},
	}
	svc := services.NewContactService(sender, cfg, client)

	called := make(chan struct{})
	sender.On("SendContact", mock.Anything, mock.Anything).Return(nil).Once()
	client.On("Do", mock.MatchedBy(func(r *http.Request) bool {
		return r.URL.String() == "https://crm.test/hook" && r.Method == http.MethodPost
	})).Run(func(mock.Arguments) { close(called) }).Return(okResponse(), nil).Once()

	resp, err := svc.SubmitContactForm(context.Background(), "fr", "", contactRequest())
	require.NoError(t, err)
	assert.True(t, resp.Success)

	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("trigger was not called")
	}
}
