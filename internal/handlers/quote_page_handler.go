package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/radshield/radshield-web/internal/catalog"
	"github.com/radshield/radshield-web/internal/i18n"
	"github.com/radshield/radshield-web/internal/middleware"
	"github.com/radshield/radshield-web/internal/quote"
	"github.com/radshield/radshield-web/internal/services"
	"github.com/radshield/radshield-web/internal/web"
	"github.com/radshield/radshield-web/pkg/logger"
	"go.uber.org/zap"
)

// Form names of the wizard page buttons
const (
	formAction = "action"
	formNeed   = "need"

	actionNext   = "next"
	actionBack   = "back"
	actionSubmit = "submit"
)

// QuotePageHandler serves the wizard as a server-rendered form. Every GET
// starts over; posts act on the wizard bound to the session cookie.
type QuotePageHandler struct {
	site    *web.Site
	catalog *catalog.Catalog
	service services.QuoteServiceInterface
}

// NewQuotePageHandler creates a new QuotePageHandler
func NewQuotePageHandler(site *web.Site, c *catalog.Catalog, service services.QuoteServiceInterface) *QuotePageHandler {
	return &QuotePageHandler{
		site:    site,
		catalog: c,
		service: service,
	}
}

// Show mounts a fresh wizard. Navigating to the page again discards the
// previous one.
func (h *QuotePageHandler) Show(c *gin.Context) {
	if id, ok := middleware.GetWizardID(c); ok {
		h.service.Discard(id)
	}

	w, ok := h.mount(c)
	if !ok {
		return
	}
	d := w.State().Draft
	h.render(c, w, d.Product != "" || d.Lead != "" || d.Size != "", "", "")
}

// Act handles a wizard form post: the current stage's fields are stored first,
// then the pressed button is applied.
func (h *QuotePageHandler) Act(c *gin.Context) {
	locale := middleware.GetLocale(c)
	msgs := h.site.Msgs

	id, _ := middleware.GetWizardID(c)
	w, err := h.service.Get(id)
	if err != nil {
		logger.Debug("Quote wizard expired, starting over", zap.String("wizard_id", id))
		w, ok := h.mount(c)
		if !ok {
			return
		}
		h.render(c, w, false, "info", msgs.T(locale, "wizard.expired"))
		return
	}

	if fields := stageForm(c, w.Stage()); len(fields) > 0 {
		if w, err = h.service.SetFields(id, fields); err != nil {
			h.refused(id, "set_fields", err)
		}
	}

	switch {
	case c.PostForm(formNeed) != "":
		w, err = h.service.ToggleNeed(id, quote.Need(c.PostForm(formNeed)))
		h.refused(id, "toggle_need", err)
	case c.PostForm(formAction) == actionNext:
		w, err = h.service.Next(id)
		h.refused(id, "next", err)
	case c.PostForm(formAction) == actionBack:
		w, err = h.service.Back(id)
		h.refused(id, "back", err)
	case c.PostForm(formAction) == actionSubmit:
		ref, sw, err := h.service.Submit(c.Request.Context(), id)
		if err == nil {
			middleware.ClearWizardCookie(c, h.service.GetCookieDomain(), h.service.GetCookieSecure())
			page := h.site.Page(locale, i18n.PageQuote, "").WithTitle(msgs.T(locale, "wizard.sent.title"))
			page.Data = gin.H{"Reference": ref}
			c.HTML(http.StatusOK, web.TemplateQuoteSent, page)
			return
		}
		attachError(c, err)
		w = sw
	}

	if w == nil {
		// the session vanished between two calls
		if w, err = h.service.Get(id); err != nil {
			w, ok := h.mount(c)
			if !ok {
				return
			}
			h.render(c, w, false, "info", msgs.T(locale, "wizard.expired"))
			return
		}
	}
	h.render(c, w, false, "", "")
}

func (h *QuotePageHandler) mount(c *gin.Context) (*quote.Wizard, bool) {
	locale := middleware.GetLocale(c)

	id, w, err := h.service.Mount(locale, c.Request.URL.Query())
	if err != nil {
		h.unavailable(c, locale, err)
		return nil, false
	}
	token, err := h.service.IssueToken(id, locale)
	if err != nil {
		h.service.Discard(id)
		h.unavailable(c, locale, err)
		return nil, false
	}
	middleware.SetWizardCookie(c, id, token, h.service.GetSessionTTL(), h.service.GetCookieDomain(), h.service.GetCookieSecure())
	return w, true
}

func (h *QuotePageHandler) render(c *gin.Context, w *quote.Wizard, prefilled bool, noticeKind, notice string) {
	locale := middleware.GetLocale(c)
	d := quotePage(h.site.Msgs, h.catalog, locale, w, prefilled)
	if notice != "" {
		d.Notice, d.NoticeKind = notice, noticeKind
	}

	page := h.site.Page(locale, i18n.PageQuote, "").WithTitle(h.site.Msgs.T(locale, "wizard.title"))
	page.Data = d
	c.HTML(http.StatusOK, web.TemplateQuote, page)
}

func (h *QuotePageHandler) unavailable(c *gin.Context, locale string, err error) {
	attachError(c, err)
	msg := h.site.Msgs.T(locale, "page.error")
	if errors.Is(err, services.ErrTooManySessions) {
		msg = h.site.Msgs.T(locale, "wizard.busy")
	}
	page := h.site.Page(locale, i18n.PageQuote, "").WithTitle(msg)
	page.Data = &errorPageData{Status: http.StatusServiceUnavailable, Message: msg}
	c.HTML(http.StatusServiceUnavailable, web.TemplateError, page)
}

// refused logs an action the wizard declined. Gate failures and stage
// mismatches are shown through the re-rendered state.
func (h *QuotePageHandler) refused(id, action string, err error) {
	if err == nil {
		return
	}
	if _, ok := quote.AsFieldErrors(err); ok || errors.Is(err, quote.ErrWrongStage) {
		return
	}
	logger.Debug("Quote wizard post refused",
		zap.String("wizard_id", id),
		zap.String("action", action),
		zap.Error(err))
}

// stageForm collects the posted values of the fields owned by stage
func stageForm(c *gin.Context, stage quote.Stage) map[string]string {
	fields := make(map[string]string)
	for _, f := range quote.FieldsOf(stage) {
		if f == quote.FieldNeeds {
			continue
		}
		if v, ok := c.GetPostForm(string(f)); ok {
			fields[string(f)] = v
		}
	}
	return fields
}
