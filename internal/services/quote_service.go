package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/radshield/radshield-web/config"
	"github.com/radshield/radshield-web/internal/cache"
	"github.com/radshield/radshield-web/internal/notify"
	"github.com/radshield/radshield-web/internal/quote"
	apperrors "github.com/radshield/radshield-web/pkg/errors"
	"github.com/radshield/radshield-web/pkg/httpclient"
	"github.com/radshield/radshield-web/pkg/jwt"
	"github.com/radshield/radshield-web/pkg/logger"
	"github.com/radshield/radshield-web/pkg/metrics"
	"github.com/radshield/radshield-web/pkg/profiling"
	"github.com/radshield/radshield-web/pkg/tracing"
	"github.com/radshield/radshield-web/pkg/trigger"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var (
	ErrQuoteSessionNotFound = fmt.Errorf("quote session %w", apperrors.ErrNotFound)
	ErrTooManySessions      = apperrors.UnavailableError("quote sessions", cache.ErrTooManyWizards)
)

// QuoteDeliverer sends a finalized request under a reference
type QuoteDeliverer interface {
	Deliver(ctx context.Context, reference string, req *quote.Request) error
}

// QuoteService owns the in-progress wizards and their session tokens
type QuoteService struct {
	store        *cache.WizardStore
	catalog      quote.Catalog
	deliverer    QuoteDeliverer
	config       *config.Config
	httpClient   httpclient.Client
	tokenManager *jwt.TokenManager
	now          func() time.Time
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	store *cache.WizardStore,
	c quote.Catalog,
	deliverer QuoteDeliverer,
	cfg *config.Config,
	httpClient httpclient.Client,
) *QuoteService {
	return &QuoteService{
		store:      store,
		catalog:    c,
		deliverer:  deliverer,
		config:     cfg,
		httpClient: httpClient,
		tokenManager: jwt.NewTokenManager(
			cfg.Wizard.JWTSecret,
			cfg.Wizard.JWTIssuer,
			time.Duration(cfg.Wizard.SessionTTLMinutes)*time.Minute,
		),
		now: time.Now,
	}
}

// Mount starts a wizard, honoring the product, pb and size deep-link parameters of query
func (s *QuoteService) Mount(locale string, query url.Values) (string, *quote.Wizard, error) {
	prefill := quote.ParsePrefill(query, s.catalog)
	w := quote.New(s.catalog, prefill, locale)
	id := uuid.NewString()

	if err := s.store.Put(id, w); err != nil {
		logger.Warn("Quote wizard rejected", zap.Error(err))
		metrics.WizardTransitions.WithLabelValues("mount", "rejected").Inc()
		return "", nil, ErrTooManySessions
	}

	metrics.WizardMounts.WithLabelValues(strconv.FormatBool(!prefill.IsEmpty())).Inc()
	logger.Debug("Quote wizard mounted",
		zap.String("wizard_id", id),
		zap.String("locale", locale),
		zap.String("product", prefill.Product))
	return id, w, nil
}

// Get returns the wizard of a session
func (s *QuoteService) Get(id string) (*quote.Wizard, error) {
	if id == "" {
		return nil, ErrQuoteSessionNotFound
	}
	w, ok := s.store.Get(id)
	if !ok {
		return nil, ErrQuoteSessionNotFound
	}
	return w, nil
}

// Discard drops a wizard, e.g. when the user restarts
func (s *QuoteService) Discard(id string) {
	s.store.Delete(id)
}

// Next validates the current stage and advances
func (s *QuoteService) Next(id string) (*quote.Wizard, error) {
	return s.apply("next", id, func(w *quote.Wizard) error {
		return w.Next()
	})
}

// Back returns to the previous stage
func (s *QuoteService) Back(id string) (*quote.Wizard, error) {
	return s.apply("back", id, func(w *quote.Wizard) error {
		return w.Back()
	})
}

// ToggleNeed flips one need on the Need stage
func (s *QuoteService) ToggleNeed(id string, need quote.Need) (*quote.Wizard, error) {
	return s.apply("toggle_need", id, func(w *quote.Wizard) error {
		return w.ToggleNeed(need)
	})
}

// SetFields stores several fields of the current stage in one step. Unknown
// field names or a field of another stage reject the whole call.
func (s *QuoteService) SetFields(id string, fields map[string]string) (*quote.Wizard, error) {
	set := make(map[quote.Field]string, len(fields))
	for name, value := range fields {
		if _, ok := quote.OwnerOf(quote.Field(name)); !ok || quote.Field(name) == quote.FieldNeeds {
			metrics.WizardTransitions.WithLabelValues("set_fields", "rejected").Inc()
			return nil, fmt.Errorf("%w: %q", quote.ErrUnknownField, name)
		}
		set[quote.Field(name)] = value
	}

	return s.apply("set_fields", id, func(w *quote.Wizard) error {
		return w.SetFields(set)
	})
}

// Submit validates the whole request and sends it. The send is detached from
// ctx cancellation and bounded by the configured submit timeout: once the
// customer pressed submit the outcome is always recorded. A delivered wizard
// is discarded and the reference returned.
func (s *QuoteService) Submit(ctx context.Context, id string) (string, *quote.Wizard, error) {
	w, err := s.Get(id)
	if err != nil {
		metrics.WizardTransitions.WithLabelValues("submit", "missing").Inc()
		return "", nil, err
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.Wizard.SubmitTimeout())
	defer cancel()

	var (
		reference string
		sent      *quote.Request
	)
	sender := quote.SenderFunc(func(ctx context.Context, req *quote.Request) error {
		reference = notify.NewReference(s.now())
		sent = req
		return s.deliverer.Deliver(ctx, reference, req)
	})

	ctx, span := tracing.StartSpan(ctx, "quote.submit", attribute.String("wizard_id", id))
	start := time.Now()
	profiling.Do(ctx, "quote_submit", func(ctx context.Context) {
		err = w.Submit(ctx, sender)
	})
	span.SetAttributes(attribute.String("reference", reference))
	tracing.End(span, err)
	metrics.WizardTransitions.WithLabelValues("submit", resultOf(err)).Inc()

	if err != nil {
		switch {
		case errors.Is(err, quote.ErrTransmission):
			metrics.QuoteSubmissions.WithLabelValues("failed").Inc()
			logger.Error("Quote request delivery failed",
				zap.String("wizard_id", id),
				zap.String("reference", reference),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err))
		case errors.Is(err, quote.ErrSubmitInProgress):
			metrics.QuoteSubmissions.WithLabelValues("duplicate").Inc()
		default:
			if _, ok := quote.AsFieldErrors(err); ok {
				metrics.QuoteSubmissions.WithLabelValues("invalid").Inc()
			}
		}
		return reference, w, err
	}

	metrics.QuoteSubmissions.WithLabelValues("success").Inc()
	logger.Info("Quote request sent",
		zap.String("wizard_id", id),
		zap.String("reference", reference),
		zap.String("locale", sent.Locale),
		zap.Int("needs", len(sent.Needs)),
		zap.String("product", sent.Product),
		zap.Duration("duration", time.Since(start)))

	trigger.CallAsync(s.config.EventTriggers.QuoteSubmittedTriggerURL, quoteEvent(reference, sent), s.httpClient)

	s.store.Delete(id)
	return reference, w, nil
}

// IssueToken signs a session token for a wizard
func (s *QuoteService) IssueToken(id, locale string) (string, error) {
	return s.tokenManager.GenerateToken(id, locale)
}

// GetTokenManager returns the JWT token manager for middleware use
func (s *QuoteService) GetTokenManager() *jwt.TokenManager {
	return s.tokenManager
}

// GetSessionTTL returns the session TTL in seconds
func (s *QuoteService) GetSessionTTL() int {
	return s.config.Wizard.SessionTTLMinutes * 60
}

// GetCookieDomain returns the cookie domain
func (s *QuoteService) GetCookieDomain() string {
	return s.config.Wizard.CookieDomain
}

// GetCookieSecure returns whether cookies should be secure
func (s *QuoteService) GetCookieSecure() bool {
	return s.config.Wizard.CookieSecure
}

func (s *QuoteService) apply(action, id string, fn func(w *quote.Wizard) error) (*quote.Wizard, error) {
	w, err := s.Get(id)
	if err != nil {
		metrics.WizardTransitions.WithLabelValues(action, "missing").Inc()
		return nil, err
	}

	err = fn(w)
	metrics.WizardTransitions.WithLabelValues(action, resultOf(err)).Inc()
	if err != nil {
		logger.Debug("Quote wizard action refused",
			zap.String("wizard_id", id),
			zap.String("action", action),
			zap.String("stage", w.Stage().String()),
			zap.Error(err))
	}
	return w, err
}

func resultOf(err error) string {
	if err == nil {
		return "ok"
	}
	if _, ok := quote.AsFieldErrors(err); ok {
		return "invalid"
	}
	if errors.Is(err, quote.ErrTransmission) {
		return "failed"
	}
	return "rejected"
}

func quoteEvent(reference string, req *quote.Request) trigger.Event {
	data := map[string]string{
		"company": req.Company,
		"email":   req.Email,
	}
	if req.Product != "" {
		data["product"] = req.Product
	}
	if req.Lead != "" {
		data["pb"] = string(req.Lead)
	}
	if req.Size != "" {
		data["size"] = string(req.Size)
	}
	if req.Quantity > 0 {
		data["quantity"] = strconv.Itoa(req.Quantity)
	}
	needs := ""
	for i, n := range req.Needs {
		if i > 0 {
			needs += ","
		}
		needs += string(n)
	}
	data["needs"] = needs

	return trigger.Event{
		Type:      "quote_submitted",
		Reference: reference,
		Locale:    req.Locale,
		Data:      data,
	}
}
