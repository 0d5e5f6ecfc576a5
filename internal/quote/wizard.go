// Package quote implements the five-stage quote request wizard: stage gates,
// field ownership, prefill from product deep links and a single in-flight
// submission to an external Sender.
package quote

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/radshield/radshield-web/internal/catalog"
	"github.com/radshield/radshield-web/internal/variant"
)

// Draft holds the values as entered, before parsing and validation.
type Draft struct {
	Needs    []Need `json:"needs"`
	Product  string `json:"product"`
	Lead     string `json:"pb"`
	Size     string `json:"size"`
	Quantity string `json:"quantity"`
	Notes    string `json:"notes"`
	Address  string `json:"address"`
	Deadline string `json:"deadline"`
	Company  string `json:"company"`
	Contact  string `json:"contact"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// HasNeed reports whether n is selected
func (d *Draft) HasNeed(n Need) bool {
	for _, have := range d.Needs {
		if have == n {
			return true
		}
	}
	return false
}

func (d *Draft) field(f Field) *string {
	switch f {
	case FieldProduct:
		return &d.Product
	case FieldLead:
		return &d.Lead
	case FieldSize:
		return &d.Size
	case FieldQuantity:
		return &d.Quantity
	case FieldNotes:
		return &d.Notes
	case FieldAddress:
		return &d.Address
	case FieldDeadline:
		return &d.Deadline
	case FieldCompany:
		return &d.Company
	case FieldContact:
		return &d.Contact
	case FieldEmail:
		return &d.Email
	case FieldPhone:
		return &d.Phone
	default:
		return nil
	}
}

// Prefill carries the deep-link values honored at mount
type Prefill struct {
	Product string
	Lead    catalog.LeadEquivalence
	Size    catalog.Size
}

// IsEmpty reports whether no value was honored
func (p Prefill) IsEmpty() bool {
	return p.Product == "" && p.Lead == "" && p.Size == ""
}

// ParsePrefill reads product, pb and size from a deep link query.
// Unknown products and values outside the enumerations are ignored.
func ParsePrefill(q url.Values, c Catalog) Prefill {
	var p Prefill
	if slug := strings.TrimSpace(q.Get(variant.ParamProduct)); slug != "" {
		if _, ok := c.BySlug(slug); ok {
			p.Product = slug
		}
	}
	if lead, ok := catalog.ParseLeadEquivalence(strings.TrimSpace(q.Get(variant.ParamLead))); ok {
		p.Lead = lead
	}
	if size, ok := catalog.ParseSize(strings.TrimSpace(q.Get(variant.ParamSize))); ok {
		p.Size = size
	}
	return p
}

// State is a read-only snapshot of a wizard for rendering
type State struct {
	Stage      Stage          `json:"stage"`
	StageName  string         `json:"stageName"`
	Draft      Draft          `json:"draft"`
	Errors     FieldErrors    `json:"errors,omitempty"`
	Touched    map[Field]bool `json:"touched,omitempty"`
	Sending    bool           `json:"sending"`
	SendFailed bool           `json:"sendFailed"`
	Submitted  bool           `json:"submitted"`
	CanBack    bool           `json:"canBack"`
	CanNext    bool           `json:"canNext"`
	CanSubmit  bool           `json:"canSubmit"`
}

// Wizard is the state machine of one quote request. It is safe for
// concurrent use; at most one Submit can be in flight.
type Wizard struct {
	mu sync.Mutex

	catalog Catalog
	locale  string

	stage   Stage
	draft   Draft
	touched map[Field]bool
	errors  FieldErrors

	sending    bool
	sendFailed bool
	submitted  bool
}

// New mounts a wizard on the Need stage with the prefill applied once.
func New(c Catalog, prefill Prefill, locale string) *Wizard {
	w := &Wizard{
		catalog: c,
		locale:  locale,
		stage:   StageNeed,
		touched: make(map[Field]bool),
	}
	w.draft.Product = prefill.Product
	w.draft.Lead = string(prefill.Lead)
	w.draft.Size = string(prefill.Size)
	return w
}

// State returns a snapshot
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stateLocked()
}

func (w *Wizard) stateLocked() State {
	d := w.draft
	d.Needs = append([]Need(nil), w.draft.Needs...)

	touched := make(map[Field]bool, len(w.touched))
	for k, v := range w.touched {
		touched[k] = v
	}

	idle := !w.sending && !w.submitted
	return State{
		Stage:      w.stage,
		StageName:  w.stage.String(),
		Draft:      d,
		Errors:     append(FieldErrors(nil), w.errors...),
		Touched:    touched,
		Sending:    w.sending,
		SendFailed: w.sendFailed,
		Submitted:  w.submitted,
		CanBack:    idle && w.stage > StageNeed,
		CanNext:    idle && w.stage < StageReview,
		CanSubmit:  idle && w.stage == StageReview,
	}
}

// Stage returns the current stage
func (w *Wizard) Stage() Stage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stage
}

// mutable reports why the wizard cannot change right now, if it cannot
func (w *Wizard) mutable() error {
	if w.submitted {
		return ErrAlreadySubmitted
	}
	if w.sending {
		return ErrSubmitInProgress
	}
	return nil
}

// Next validates the current stage's gate and advances one stage.
// On a failed gate the stage is unchanged and FieldErrors is returned.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutable(); err != nil {
		return err
	}
	if w.stage >= StageReview {
		return fmt.Errorf("next from %s: %w", w.stage, ErrWrongStage)
	}

	if fields := gateFields[w.stage]; len(fields) > 0 {
		_, errs := build(&w.draft, w.locale, w.catalog)
		if gate := errs.only(fields...); len(gate) > 0 {
			w.errors = gate
			return gate
		}
	}

	w.errors = nil
	w.stage++
	return nil
}

// Back returns to the previous stage without validation
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutable(); err != nil {
		return err
	}
	if w.stage == StageNeed {
		return fmt.Errorf("back from %s: %w", w.stage, ErrWrongStage)
	}

	w.errors = nil
	w.sendFailed = false
	w.stage--
	return nil
}

// ToggleNeed adds need if absent, removes it if present. Only on the Need stage.
func (w *Wizard) ToggleNeed(need Need) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutable(); err != nil {
		return err
	}
	if w.stage != StageNeed {
		return fmt.Errorf("toggle need on %s: %w", w.stage, ErrWrongStage)
	}
	if _, ok := ParseNeed(string(need)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNeed, need)
	}

	needs := make([]Need, 0, len(w.draft.Needs)+1)
	removed := false
	for _, n := range w.draft.Needs {
		if n == need {
			removed = true
			continue
		}
		needs = append(needs, n)
	}
	if !removed {
		needs = append(needs, need)
	}
	w.draft.Needs = needs
	w.touched[FieldNeeds] = true
	w.recheck(FieldNeeds)
	return nil
}

// SetField stores value on a field owned by the current stage. It does not
// run the stage gate; an existing error on the field is cleared once the
// field becomes valid.
func (w *Wizard) SetField(field Field, value string) error {
	return w.SetFields(map[Field]string{field: value})
}

// SetFields stores several fields of the current stage at once. Every field
// is checked before any is written, so a refused call leaves the draft as it
// was. The product is written last: a pb or size sent along with a new
// product is kept only if that product offers it.
func (w *Wizard) SetFields(fields map[Field]string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutable(); err != nil {
		return err
	}
	for field := range fields {
		owner, ok := OwnerOf(field)
		if !ok || field == FieldNeeds {
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		if owner != w.stage {
			return fmt.Errorf("set %s on %s: %w", field, w.stage, ErrWrongStage)
		}
	}

	for _, field := range FieldsOf(w.stage) {
		if value, ok := fields[field]; ok && field != FieldProduct {
			w.setLocked(field, value)
		}
	}
	if value, ok := fields[FieldProduct]; ok {
		w.setLocked(FieldProduct, value)
	}
	return nil
}

func (w *Wizard) setLocked(field Field, value string) {
	*w.draft.field(field) = value
	w.touched[field] = true

	switch field {
	case FieldProduct:
		w.reconcileProduct()
	case FieldLead:
		w.reconcileLead()
	}

	w.recheck(field)
}

// reconcileProduct keeps the lead offered by a newly chosen product
func (w *Wizard) reconcileProduct() {
	p, ok := w.catalog.BySlug(strings.TrimSpace(w.draft.Product))
	if !ok {
		return
	}
	if _, offered := variant.VariantForLead(p, catalog.LeadEquivalence(w.draft.Lead)); offered {
		w.reconcileLead()
		return
	}
	sel := variant.OnLeadChanged(p, variant.Selection{Size: catalog.Size(w.draft.Size)}, variant.DefaultLead(p))
	w.draft.Lead = string(sel.Lead)
	w.draft.Size = string(sel.Size)
}

// reconcileLead applies the variant policy to the size after a lead change
func (w *Wizard) reconcileLead() {
	p, ok := w.catalog.BySlug(strings.TrimSpace(w.draft.Product))
	if !ok {
		return
	}
	lead, ok := catalog.ParseLeadEquivalence(strings.TrimSpace(w.draft.Lead))
	if !ok {
		return
	}
	sel := variant.OnLeadChanged(p, variant.Selection{Lead: lead, Size: catalog.Size(w.draft.Size)}, lead)
	w.draft.Size = string(sel.Size)
}

// recheck drops the error on field if the field now passes
func (w *Wizard) recheck(field Field) {
	if !w.errors.Has(field) {
		return
	}
	_, errs := build(&w.draft, w.locale, w.catalog)
	if !errs.Has(field) {
		w.errors = w.errors.without(field)
	}
}

// Submit re-validates the whole request and hands it to sender. Only one
// submission runs at a time: a concurrent call returns ErrSubmitInProgress
// without reaching sender. A sender failure leaves the wizard on Review with
// every field intact and returns ErrTransmission.
func (w *Wizard) Submit(ctx context.Context, sender Sender) error {
	w.mu.Lock()
	if err := w.mutable(); err != nil {
		w.mu.Unlock()
		return err
	}
	if w.stage != StageReview {
		stage := w.stage
		w.mu.Unlock()
		return fmt.Errorf("submit from %s: %w", stage, ErrWrongStage)
	}

	req, errs := build(&w.draft, w.locale, w.catalog)
	if len(errs) > 0 {
		w.errors = errs
		w.mu.Unlock()
		return errs
	}

	w.errors = nil
	w.sendFailed = false
	w.sending = true
	w.mu.Unlock()

	delivered := false
	defer func() {
		w.mu.Lock()
		w.sending = false
		if delivered {
			w.submitted = true
		} else {
			w.sendFailed = true
		}
		w.mu.Unlock()
	}()

	if err := sender.SendQuote(ctx, req); err != nil {
		return fmt.Errorf("%w: %v", ErrTransmission, err)
	}
	delivered = true
	return nil
}

// Request returns the typed request built from the current draft, or the
// errors that would block Submit.
func (w *Wizard) Request() (*Request, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	req, errs := build(&w.draft, w.locale, w.catalog)
	if len(errs) > 0 {
		return nil, errs
	}
	return req, nil
}
