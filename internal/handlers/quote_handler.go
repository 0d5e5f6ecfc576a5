package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/radshield/radshield-web/internal/i18n"
	"github.com/radshield/radshield-web/internal/middleware"
	"github.com/radshield/radshield-web/internal/models"
	"github.com/radshield/radshield-web/internal/quote"
	"github.com/radshield/radshield-web/internal/services"
)

// QuoteHandler exposes the quote wizard as a JSON API. The wizard is bound to
// the quote session cookie.
type QuoteHandler struct {
	service services.QuoteServiceInterface
	msgs    *i18n.Catalog
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(service services.QuoteServiceInterface, msgs *i18n.Catalog) *QuoteHandler {
	return &QuoteHandler{
		service: service,
		msgs:    msgs,
	}
}

// Mount handles POST /api/v1/quote
// Starts a new wizard, discarding the previous one. The product, pb and size
// query parameters prefill the Details stage.
func (h *QuoteHandler) Mount(c *gin.Context) {
	locale := middleware.GetLocale(c)

	if id, ok := middleware.GetWizardID(c); ok {
		h.service.Discard(id)
	}

	id, w, err := h.service.Mount(locale, c.Request.URL.Query())
	if err != nil {
		respondError(c, statusOf(err), h.msgs.T(locale, "wizard.busy"), err)
		return
	}

	token, err := h.service.IssueToken(id, locale)
	if err != nil {
		h.service.Discard(id)
		respondError(c, http.StatusInternalServerError, "Failed to start quote session", err)
		return
	}
	middleware.SetWizardCookie(c, id, token, h.service.GetSessionTTL(), h.service.GetCookieDomain(), h.service.GetCookieSecure())

	c.JSON(http.StatusCreated, wizardResponse(h.msgs, locale, w))
}

// Get handles GET /api/v1/quote
func (h *QuoteHandler) Get(c *gin.Context) {
	h.run(c, func(id string) (*quote.Wizard, error) {
		return h.service.Get(id)
	})
}

// Next handles POST /api/v1/quote/next
func (h *QuoteHandler) Next(c *gin.Context) {
	h.run(c, h.service.Next)
}

// Back handles POST /api/v1/quote/back
func (h *QuoteHandler) Back(c *gin.Context) {
	h.run(c, h.service.Back)
}

// ToggleNeed handles POST /api/v1/quote/needs/:need
func (h *QuoteHandler) ToggleNeed(c *gin.Context) {
	need := quote.Need(c.Param("need"))
	h.run(c, func(id string) (*quote.Wizard, error) {
		return h.service.ToggleNeed(id, need)
	})
}

// SetFields handles PATCH /api/v1/quote/fields
func (h *QuoteHandler) SetFields(c *gin.Context) {
	var req models.SetFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(err, h.msgs, middleware.GetLocale(c)), err)
		return
	}

	h.run(c, func(id string) (*quote.Wizard, error) {
		return h.service.SetFields(id, req.Fields)
	})
}

// Submit handles POST /api/v1/quote/submit
func (h *QuoteHandler) Submit(c *gin.Context) {
	locale := middleware.GetLocale(c)
	id, _ := middleware.GetWizardID(c)

	ref, w, err := h.service.Submit(c.Request.Context(), id)
	if err != nil {
		h.respondWizardError(c, locale, w, err)
		return
	}

	middleware.ClearWizardCookie(c, h.service.GetCookieDomain(), h.service.GetCookieSecure())

	resp := wizardResponse(h.msgs, locale, w)
	resp.Reference = ref
	resp.Message = h.msgs.T(locale, "wizard.sent.body")
	c.JSON(http.StatusOK, resp)
}

// Discard handles DELETE /api/v1/quote
func (h *QuoteHandler) Discard(c *gin.Context) {
	if id, ok := middleware.GetWizardID(c); ok {
		h.service.Discard(id)
	}
	middleware.ClearWizardCookie(c, h.service.GetCookieDomain(), h.service.GetCookieSecure())
	c.Status(http.StatusNoContent)
}

func (h *QuoteHandler) run(c *gin.Context, fn func(id string) (*quote.Wizard, error)) {
	locale := middleware.GetLocale(c)
	id, _ := middleware.GetWizardID(c)

	w, err := fn(id)
	if err != nil {
		h.respondWizardError(c, locale, w, err)
		return
	}
	c.JSON(http.StatusOK, wizardResponse(h.msgs, locale, w))
}

// respondWizardError maps wizard errors to statuses. Whenever the wizard is
// known its state is returned so the client can re-render.
func (h *QuoteHandler) respondWizardError(c *gin.Context, locale string, w *quote.Wizard, err error) {
	attachError(c, err)

	if w == nil {
		switch {
		case errors.Is(err, quote.ErrUnknownField):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrQuoteSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "message": h.msgs.T(locale, "wizard.expired")})
		default:
			c.JSON(statusOf(err), gin.H{"error": err.Error()})
		}
		return
	}

	resp := wizardResponse(h.msgs, locale, w)
	status := http.StatusConflict

	if fe, ok := quote.AsFieldErrors(err); ok {
		// Submit errors may span several stages
		resp.Errors = fieldErrorViews(h.msgs, locale, fe)
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}

	switch {
	case errors.Is(err, quote.ErrTransmission):
		status = http.StatusBadGateway
		resp.Message = h.msgs.T(locale, "wizard.failed")
	case errors.Is(err, quote.ErrSubmitInProgress):
		resp.Message = h.msgs.T(locale, "wizard.in_progress")
	case errors.Is(err, quote.ErrUnknownField), errors.Is(err, quote.ErrUnknownNeed):
		status = http.StatusBadRequest
	}
	c.JSON(status, resp)
}
