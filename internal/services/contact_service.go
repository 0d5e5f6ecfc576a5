package services

import (
	"context"
	"strings"

	"github.com/radshield/radshield-web/config"
	"github.com/radshield/radshield-web/internal/models"
	"github.com/radshield/radshield-web/internal/notify"
	"github.com/radshield/radshield-web/pkg/httpclient"
	"github.com/radshield/radshield-web/pkg/logger"
	"github.com/radshield/radshield-web/pkg/metrics"
	"github.com/radshield/radshield-web/pkg/recaptcha"
	"github.com/radshield/radshield-web/pkg/trigger"
	"go.uber.org/zap"
)

// ContactSender delivers a contact form message
type ContactSender interface {
	SendContact(ctx context.Context, msg *notify.ContactMessage) error
}

// CaptchaVerifier checks a reCAPTCHA response token
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// ContactService handles contact form submissions
type ContactService struct {
	sender     ContactSender
	verifier   CaptchaVerifier
	config     *config.Config
	httpClient httpclient.Client
}

// NewContactService creates a new contact service instance. The captcha is
// only checked when a reCAPTCHA secret is configured.
func NewContactService(sender ContactSender, cfg *config.Config, httpClient httpclient.Client) *ContactService {
	s := &ContactService{
		sender:     sender,
		config:     cfg,
		httpClient: httpClient,
	}
	if cfg.ReCAPTCHA.Enabled() {
		s.verifier = recaptcha.NewVerifier(cfg.ReCAPTCHA.SecretKey, httpClient)
	}
	return s
}

// WithVerifier replaces the captcha verifier
func (s *ContactService) WithVerifier(v CaptchaVerifier) *ContactService {
	s.verifier = v
	return s
}

// SubmitContactForm checks and forwards a contact message. Failures the user
// can act on are reported in the response; the error is reserved for
// unexpected conditions.
func (s *ContactService) SubmitContactForm(ctx context.Context, locale, remoteIP string, req *models.ContactRequest) (*models.ContactResponse, error) {
	// Bots fill every field; pretend success so they don't adapt
	if strings.TrimSpace(req.Website) != "" {
		metrics.ContactFormSubmissions.WithLabelValues("spam").Inc()
		logger.Info("Contact form honeypot triggered", zap.String("remote_ip", remoteIP))
		return &models.ContactResponse{Success: true}, nil
	}

	if s.verifier != nil {
		if err := s.verifier.Verify(ctx, req.RecaptchaToken, remoteIP); err != nil {
			metrics.ContactFormSubmissions.WithLabelValues("captcha_failed").Inc()
			logger.Warn("ReCAPTCHA verification failed", zap.Error(err))
			return &models.ContactResponse{
				Success: false,
				Error:   "captcha",
			}, nil
		}
	}

	msg := &notify.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Company: strings.TrimSpace(req.Company),
		Message: strings.TrimSpace(req.Message),
		Locale:  locale,
	}

	if err := s.sender.SendContact(ctx, msg); err != nil {
		metrics.ContactFormSubmissions.WithLabelValues("error").Inc()
		logger.Error("Failed to send contact message", zap.Error(err))
		return &models.ContactResponse{
			Success: false,
			Error:   "send",
		}, nil
	}

	metrics.ContactFormSubmissions.WithLabelValues("success").Inc()
	logger.Info("Contact message sent", zap.String("locale", locale))

	trigger.CallAsync(s.config.EventTriggers.ContactSubmittedTriggerURL, trigger.Event{
		Type:   "contact_submitted",
		Locale: locale,
		Data: map[string]string{
			"company": msg.Company,
			"email":   msg.Email,
		},
	}, s.httpClient)

	return &models.ContactResponse{Success: true}, nil
}
