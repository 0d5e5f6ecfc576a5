package handlers

import (
	"strings"
	"time"

	"github.com/radshield/radshield-web/internal/catalog"
	"github.com/radshield/radshield-web/internal/i18n"
	"github.com/radshield/radshield-web/internal/models"
	"github.com/radshield/radshield-web/internal/notify"
	"github.com/radshield/radshield-web/internal/quote"
	"github.com/radshield/radshield-web/internal/variant"
	"github.com/radshield/radshield-web/pkg/pdf"
)

type option struct {
	Value    string
	Label    string
	Count    int
	Selected bool
}

type needOption struct {
	Value    string
	Label    string
	Hint     string
	Selected bool
}

type reviewError struct {
	Label   string
	Message string
}

// quotePageData is the template data of the wizard page
type quotePageData struct {
	State      quote.State
	Steps      []models.StepView
	StepNumber int
	StepCount  int
	Errors     map[string]string
	ErrorList  []reviewError
	Needs      []needOption
	Products   []option
	Leads      []option
	Sizes      []option
	Summary    []pdf.Section
	Notice     string
	NoticeKind string
	Prefilled  bool
	MinDate    string
}

func stepViews(msgs *i18n.Catalog, locale string, current quote.Stage) []models.StepView {
	steps := make([]models.StepView, 0, len(quote.Stages))
	for i, s := range quote.Stages {
		steps = append(steps, models.StepView{
			Index:   i,
			Name:    s.String(),
			Label:   msgs.T(locale, "stage."+s.String()),
			Current: s == current,
			Done:    s < current,
		})
	}
	return steps
}

func fieldErrorViews(msgs *i18n.Catalog, locale string, errs quote.FieldErrors) []models.FieldErrorView {
	if len(errs) == 0 {
		return nil
	}
	out := make([]models.FieldErrorView, 0, len(errs))
	for _, e := range errs {
		out = append(out, models.FieldErrorView{
			Field:   string(e.Field),
			Code:    e.Code,
			Message: msgs.FieldError(locale, string(e.Field), e.Code, e.Param),
		})
	}
	return out
}

// wizardResponse is the JSON body returned by every wizard endpoint
func wizardResponse(msgs *i18n.Catalog, locale string, w *quote.Wizard) *models.QuoteWizardResponse {
	state := w.State()
	return &models.QuoteWizardResponse{
		Wizard: state,
		Steps:  stepViews(msgs, locale, state.Stage),
		Errors: fieldErrorViews(msgs, locale, state.Errors),
	}
}

// quotePage builds the wizard template data. Products and grades are listed
// from the catalogue; sizes follow the selected product and grade.
func quotePage(msgs *i18n.Catalog, c *catalog.Catalog, locale string, w *quote.Wizard, prefilled bool) *quotePageData {
	state := w.State()
	errs := fieldErrorViews(msgs, locale, state.Errors)

	d := &quotePageData{
		State:      state,
		Steps:      stepViews(msgs, locale, state.Stage),
		StepNumber: int(state.Stage) + 1,
		StepCount:  len(quote.Stages),
		Errors:     make(map[string]string, len(errs)),
		Prefilled:  prefilled,
		MinDate:    time.Now().Format("2006-01-02"),
	}
	for _, e := range errs {
		if _, seen := d.Errors[e.Field]; !seen {
			d.Errors[e.Field] = e.Message
		}
	}

	switch state.Stage {
	case quote.StageNeed:
		for _, n := range quote.Needs {
			d.Needs = append(d.Needs, needOption{
				Value:    string(n),
				Label:    msgs.T(locale, "need."+string(n)),
				Hint:     msgs.T(locale, "need."+string(n)+".hint"),
				Selected: state.Draft.HasNeed(n),
			})
		}
	case quote.StageDetails:
		d.Products, d.Leads, d.Sizes = detailOptions(c, locale, state.Draft)
	case quote.StageReview:
		req, err := w.Request()
		if fe, ok := quote.AsFieldErrors(err); ok {
			for _, v := range fieldErrorViews(msgs, locale, fe) {
				d.ErrorList = append(d.ErrorList, reviewError{
					Label:   msgs.T(locale, "field."+v.Field),
					Message: v.Message,
				})
			}
		} else if req != nil {
			d.Summary = notify.Summary(msgs, c, locale, req)
		}
	}

	switch {
	case state.SendFailed && state.Stage == quote.StageReview:
		d.Notice, d.NoticeKind = msgs.T(locale, "wizard.failed"), "error"
	case state.Sending:
		d.Notice, d.NoticeKind = msgs.T(locale, "wizard.in_progress"), "info"
	}
	return d
}

// detailOptions lists the choices of the Details stage. Without a known
// product every grade and size is offered.
func detailOptions(c *catalog.Catalog, locale string, draft quote.Draft) (products, leads, sizes []option) {
	selectedSlug := strings.TrimSpace(draft.Product)
	for _, p := range c.All() {
		products = append(products, option{
			Value:    p.Slug,
			Label:    p.Title.In(locale),
			Selected: p.Slug == selectedSlug,
		})
	}

	p, known := c.BySlug(selectedSlug)
	offeredLeads := catalog.LeadEquivalences
	offeredSizes := catalog.Sizes
	if known {
		offeredLeads = p.Leads()
		if v, ok := variant.VariantForLead(p, catalog.LeadEquivalence(draft.Lead)); ok {
			offeredSizes = v.Sizes
		} else {
			offeredSizes = nil
		}
	}

	for _, l := range offeredLeads {
		leads = append(leads, option{Value: string(l), Label: string(l), Selected: string(l) == draft.Lead})
	}
	for _, s := range offeredSizes {
		sizes = append(sizes, option{Value: string(s), Label: string(s), Selected: string(s) == draft.Size})
	}
	return products, leads, sizes
}
