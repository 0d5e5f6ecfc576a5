package quote

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/radshield/radshield-web/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSender records calls and fails while failing is set
type fakeSender struct {
	calls   atomic.Int32
	failing atomic.Bool
	last    *Request
	mu      sync.Mutex
}

func (f *fakeSender) SendQuote(_ context.Context, req *Request) error {
	f.calls.Add(1)
	f.mu.Lock()
	f.last = req
	f.mu.Unlock()
	if f.failing.Load() {
		return errors.New("provider returned 503")
	}
	return nil
}

// blockingSender parks every call until release is closed
type blockingSender struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSender) SendQuote(ctx context.Context, _ *Request) error {
	b.calls.Add(1)
	b.entered <- struct{}{}
	<-b.release
	return nil
}

func newTestWizard(t *testing.T, prefill Prefill) *Wizard {
	t.Helper()
	return New(catalog.MustDefault(), prefill, "fr")
}

// advanceToReview fills only the required fields
func advanceToReview(t *testing.T, w *Wizard, need Need) {
	t.Helper()
	require.NoError(t, w.ToggleNeed(need))
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	require.NoError(t, w.SetField(FieldCompany, "Acme Clinic"))
	require.NoError(t, w.SetField(FieldContact, "J. Doe"))
	require.NoError(t, w.SetField(FieldEmail, "j@acme.test"))
	require.NoError(t, w.Next())
	require.Equal(t, StageReview, w.Stage())
}

func TestWizard_StartsOnNeed(t *testing.T) {
	w := newTestWizard(t, Prefill{})
	st := w.State()

	assert.Equal(t, StageNeed, st.Stage)
	assert.Equal(t, "need", st.StageName)
	assert.False(t, st.CanBack)
	assert.True(t, st.CanNext)
	assert.False(t, st.CanSubmit)
}

func TestWizard_NeedGate(t *testing.T) {
	w := newTestWizard(t, Prefill{})

	err := w.Next()
	require.Error(t, err)
	fe, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.True(t, fe.Has(FieldNeeds))
	assert.Equal(t, StageNeed, w.Stage())
	assert.True(t, w.State().Errors.Has(FieldNeeds))

	require.NoError(t, w.ToggleNeed(NeedPurchase))
	assert.Empty(t, w.State().Errors, "error clears once a need is chosen")

	require.NoError(t, w.Next())
	assert.Equal(t, StageDetails, w.Stage())
}

func TestWizard_ToggleNeed(t *testing.T) {
	w := newTestWizard(t, Prefill{})

	require.NoError(t, w.ToggleNeed(NeedRental))
	require.NoError(t, w.ToggleNeed(NeedCleaning))
	assert.Equal(t, []Need{NeedRental, NeedCleaning}, w.State().Draft.Needs)

	require.NoError(t, w.ToggleNeed(NeedRental))
	assert.Equal(t, []Need{NeedCleaning}, w.State().Draft.Needs)

	require.NoError(t, w.ToggleNeed(NeedCleaning))
	assert.Empty(t, w.State().Draft.Needs)

	err := w.Next()
	assert.Error(t, err, "removing every need blocks the gate again")

	err = w.ToggleNeed("leasing")
	assert.ErrorIs(t, err, ErrUnknownNeed)
}

func TestWizard_ToggleNeedOnlyOnNeedStage(t *testing.T) {
	w := newTestWizard(t, Prefill{})
	require.NoError(t, w.ToggleNeed(NeedPurchase))
	require.NoError(t, w.Next())

	err := w.ToggleNeed(NeedRental)
	assert.ErrorIs(t, err, ErrWrongStage)
	assert.Equal(t, []Need{NeedPurchase}, w.State().Draft.Needs)
}

func TestWizard_DetailsAndLogisticsHaveNoGate(t *testing.T) {
	w := newTestWizard(t, Prefill{})
	require.NoError(t, w.ToggleNeed(NeedPurchase))
	require.NoError(t, w.Next())

	require.NoError(t, w.Next())
	assert.Equal(t, StageLogistics, w.Stage())
	require.NoError(t, w.Next())
	assert.Equal(t, StageCompany, w.Stage())
}

func TestWizard_CompanyGate(t *testing.T) {
	tests := []struct {
		name    string
		company string
		contact string
		email   string
		fields  []Field
	}{
		{"empty company", "", "J. Doe", "j@acme.test", []Field{FieldCompany}},
		{"invalid email", "Acme Clinic", "J. Doe", "not-an-email", []Field{FieldEmail}},
		{"everything missing", "", "", "", []Field{FieldCompany, FieldContact, FieldEmail}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWizard(t, Prefill{})
			require.NoError(t, w.ToggleNeed(NeedPurchase))
			require.NoError(t, w.Next())
			require.NoError(t, w.Next())
			require.NoError(t, w.Next())

			require.NoError(t, w.SetField(FieldCompany, tt.company))
			require.NoError(t, w.SetField(FieldContact, tt.contact))
			require.NoError(t, w.SetField(FieldEmail, tt.email))

			err := w.Next()
			fe, ok := AsFieldErrors(err)
			require.True(t, ok)
			for _, f := range tt.fields {
				assert.True(t, fe.Has(f), "expected error on %s", f)
			}
			assert.Len(t, fe, len(tt.fields))
			assert.Equal(t, StageCompany, w.Stage())
		})
	}
}

func TestWizard_CompanyGatePasses(t *testing.T) {
	w := newTestWizard(t, Prefill{})
	advanceToReview(t, w, NeedPurchase)

	st := w.State()
	assert.Equal(t, StageReview, st.Stage)
	assert.True(t, st.CanSubmit)
	assert.False(t, st.CanNext)
}

func TestWizard_EmailErrorClearsWhenFixed(t *testing.T) {
	w := newTestWizard(t, Prefill{})
	require.NoError(t, w.ToggleNeed(NeedPurchase))
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	require.NoError(t, w.SetField(FieldCompany, "Acme Clinic"))
	require.NoError(t, w.SetField(FieldContact, "J. Doe"))
	require.NoError(t, w.SetField(FieldEmail, "not-an-email"))
	require.Error(t, w.Next())

	require.NoError(t, w.SetField(FieldEmail, "j@acme"))
	require.NoError(t, w.SetField(FieldEmail, "j@acme.test"))
	assert.False(t, w.State().Errors.Has(FieldEmail))
}

func TestWizard_SetFieldDoesNotValidate(t *testing.T) {
	w := newTestWizard(t, Prefill{})
	require.NoError(t, w.ToggleNeed(NeedPurchase))
	require.NoError(t, w.Next())

	require.NoError(t, w.SetField(FieldQuantity, "abc"))
	assert.Empty(t, w.State().Errors)
	assert.True(t, w.State().Touched[FieldQuantity])
}

func TestWizard_SetFieldOwnership(t *testing.T) {
	w := newTestWizard(t, Prefill{})

	err := w.SetField(FieldCompany, "Acme")
	assert.ErrorIs(t, err, ErrWrongStage)

	err = w.SetField("colour", "red")
	assert.ErrorIs(t, err, ErrUnknownField)

	err = w.SetField(FieldNeeds, "purchase")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestWizard_SetFieldsIsAllOrNothing(t *testing.T) {
	w := newTestWizard(t, Prefill{Product: "tablier-plombe-premium"})
	require.NoError(t, w.ToggleNeed(NeedPurchase))
	require.NoError(t, w.Next())
	before := w.State()

	tests := []struct {
		name   string
		fields map[Field]string
		want   error
	}{
		{
			name:   "field of a later stage",
			fields: map[Field]string{FieldQuantity: "5", FieldCompany: "Acme"},
			want:   ErrWrongStage,
		},
		{
			name:   "unknown field",
			fields: map[Field]string{FieldSize: "XL", "colour": "red"},
			want:   ErrUnknownField,
		},
		{
			name:   "needs are toggled, not set",
			fields: map[Field]string{FieldNotes: "rush", FieldNeeds: "rental"},
			want:   ErrUnknownField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := w.SetFields(tt.fields)
			assert.ErrorIs(t, err, tt.want)

			st := w.State()
			assert.Equal(t, before.Draft, st.Draft)
			assert.Equal(t, before.Touched, st.Touched)
		})
	}
}

func TestWizard_SetFieldsAppliesProductLast(t *testing.T) {
	w := newTestWizard(t, Prefill{Product: "tablier-plombe-premium", Lead: catalog.Lead025, Size: catalog.SizeXL})
	require.NoError(t, w.ToggleNeed(NeedPurchase))
	require.NoError(t, w.Next())

	require.NoError(t, w.SetFields(map[Field]string{
		FieldProduct:  "protege-thyroide",
		FieldLead:     "0,35 mm Pb",
		FieldSize:     "XXL",
		FieldQuantity: "3",
	}))

	st := w.State()
	assert.Equal(t, "protege-thyroide", st.Draft.Product)
	assert.Equal(t, "0,50 mm Pb", st.Draft.Lead)
	assert.Equal(t, "S", st.Draft.Size)
	assert.Equal(t, "3", st.Draft.Quantity)
	assert.True(t, st.Touched[FieldQuantity])
}

func TestWizard_Back(t *testing.T) {
	w := newTestWizard(t, Prefill{})

	err := w.Back()
	assert.ErrorIs(t, err, ErrWrongStage)

	require.NoError(t, w.ToggleNeed(NeedPurchase))
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	require.NoError(t, w.Back())
	assert.Equal(t, StageDetails, w.Stage())
	require.NoError(t, w.Back())
	assert.Equal(t, StageNeed, w.Stage())
}

func TestWizard_BackSkipsValidation(t *testing.T) {
	w := newTestWizard(t, Prefill{})
	require.NoError(t, w.ToggleNeed(NeedPurchase))
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	require.NoError(t, w.SetField(FieldEmail, "broken"))

	require.NoError(t, w.Back())
	assert.Equal(t, StageLogistics, w.Stage())
}

func TestWizard_NextFromReviewIsRejected(t *testing.T) {
	w := newTestWizard(t, Prefill{})
	advanceToReview(t, w, NeedRental)

	assert.ErrorIs(t, w.Next(), ErrWrongStage)
	assert.Equal(t, StageReview, w.Stage())
}

func TestParsePrefill(t *testing.T) {
	c := catalog.MustDefault()

	tests := []struct {
		name  string
		query string
		want  Prefill
	}{
		{
			name:  "all honored",
			query: "product=tablier-plombe-premium&pb=0,35%20mm%20Pb&size=L",
			want:  Prefill{Product: "tablier-plombe-premium", Lead: catalog.Lead035, Size: catalog.SizeL},
		},
		{
			name:  "plus-encoded spaces",
			query: "product=protege-thyroide&pb=0%2C50+mm+Pb",
			want:  Prefill{Product: "protege-thyroide", Lead: catalog.Lead050},
		},
		{
			name:  "unknown values ignored",
			query: "product=does-not-exist&pb=2mm&size=XXXL",
			want:  Prefill{},
		},
		{
			name:  "partial",
			query: "size=M",
			want:  Prefill{Size: catalog.SizeM},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ParsePrefill(q, c))
		})
	}
}

func TestWizard_PrefillPersistsThroughStages(t *testing.T) {
	q, err := url.ParseQuery("product=tablier-plombe-premium&pb=0,35%20mm%20Pb&size=L")
	require.NoError(t, err)
	w := newTestWizard(t, ParsePrefill(q, catalog.MustDefault()))

	check := func() {
		d := w.State().Draft
		assert.Equal(t, "tablier-plombe-premium", d.Product)
		assert.Equal(t, "0,35 mm Pb", d.Lead)
		assert.Equal(t, "L", d.Size)
	}

	check()
	require.NoError(t, w.ToggleNeed(NeedPurchase))
	require.NoError(t, w.Next())
	check()
	require.NoError(t, w.Next())
	check()
	require.NoError(t, w.Next())
	check()
}

func TestWizard_UserEditsWinOverPrefill(t *testing.T) {
	w := newTestWizard(t, Prefill{Product: "tablier-plombe-premium", Lead: catalog.Lead035, Size: catalog.SizeXXL})
	require.NoError(t, w.ToggleNeed(NeedPurchase))
	require.NoError(t, w.Next())

	require.NoError(t, w.SetField(FieldLead, "0,50 mm Pb"))
	d := w.State().Draft
	assert.Equal(t, "0,50 mm Pb", d.Lead)
	assert.Equal(t, "M", d.Size, "XXL is not offered at 0,50 so the first size is selected")

	require.NoError(t, w.SetField(FieldSize, "XL"))
	assert.Equal(t, "XL", w.State().Draft.Size)
}

func TestWizard_ChangingProductKeepsOfferedLead(t *testing.T) {
	w := newTestWizard(t, Prefill{Product: "tablier-plombe-premium", Lead: catalog.Lead025, Size: catalog.SizeXL})
	require.NoError(t, w.ToggleNeed(NeedPurchase))
	require.NoError(t, w.Next())

	require.NoError(t, w.SetField(FieldProduct, "protege-thyroide"))
	d := w.State().Draft
	assert.Equal(t, "0,50 mm Pb", d.Lead)
	assert.Equal(t, "S", d.Size)
}

func TestWizard_Submit(t *testing.T) {
	w := newTestWizard(t, Prefill{Product: "tablier-plombe-premium", Lead: catalog.Lead035, Size: catalog.SizeL})
	advanceToReview(t, w, NeedPurchase)
	sender := &fakeSender{}

	require.NoError(t, w.Submit(context.Background(), sender))

	assert.Equal(t, int32(1), sender.calls.Load())
	assert.Equal(t, "Acme Clinic", sender.last.Company)
	assert.Equal(t, []Need{NeedPurchase}, sender.last.Needs)
	assert.Equal(t, catalog.Lead035, sender.last.Lead)
	assert.Equal(t, "fr", sender.last.Locale)

	st := w.State()
	assert.True(t, st.Submitted)
	assert.False(t, st.CanSubmit)
	assert.ErrorIs(t, w.Submit(context.Background(), sender), ErrAlreadySubmitted)
	assert.ErrorIs(t, w.Back(), ErrAlreadySubmitted)
	assert.Equal(t, int32(1), sender.calls.Load())
}

func TestWizard_SubmitOnlyFromReview(t *testing.T) {
	w := newTestWizard(t, Prefill{})
	sender := &fakeSender{}

	err := w.Submit(context.Background(), sender)
	assert.ErrorIs(t, err, ErrWrongStage)
	assert.Equal(t, int32(0), sender.calls.Load())
}

func TestWizard_SubmitRevalidatesOptionalFields(t *testing.T) {
	w := newTestWizard(t, Prefill{})
	require.NoError(t, w.ToggleNeed(NeedPurchase))
	require.NoError(t, w.Next())
	require.NoError(t, w.SetField(FieldQuantity, "0"))
	require.NoError(t, w.Next())
	require.NoError(t, w.SetField(FieldDeadline, "next week"))
	require.NoError(t, w.Next())
	require.NoError(t, w.SetField(FieldCompany, "Acme Clinic"))
	require.NoError(t, w.SetField(FieldContact, "J. Doe"))
	require.NoError(t, w.SetField(FieldEmail, "j@acme.test"))
	require.NoError(t, w.Next())

	sender := &fakeSender{}
	err := w.Submit(context.Background(), sender)
	fe, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.True(t, fe.Has(FieldQuantity))
	assert.True(t, fe.Has(FieldDeadline))
	assert.Equal(t, int32(0), sender.calls.Load())
	assert.Equal(t, StageReview, w.Stage())
}

func TestWizard_SubmitRejectsSizeNotOfferedForLead(t *testing.T) {
	w := newTestWizard(t, Prefill{Product: "tablier-plombe-premium", Lead: catalog.Lead050, Size: catalog.SizeXXL})
	advanceToReview(t, w, NeedPurchase)

	err := w.Submit(context.Background(), &fakeSender{})
	fe, ok := AsFieldErrors(err)
	require.True(t, ok)
	got, _ := fe.For(FieldSize)
	assert.Equal(t, "variant", got.Code)
}

func TestWizard_SubmitFailureKeepsDataAndAllowsRetry(t *testing.T) {
	w := newTestWizard(t, Prefill{})
	advanceToReview(t, w, NeedRental)
	before := w.State().Draft

	sender := &fakeSender{}
	sender.failing.Store(true)

	err := w.Submit(context.Background(), sender)
	assert.ErrorIs(t, err, ErrTransmission)

	st := w.State()
	assert.Equal(t, StageReview, st.Stage)
	assert.True(t, st.SendFailed)
	assert.False(t, st.Sending)
	assert.True(t, st.CanSubmit)
	assert.Equal(t, before, st.Draft)

	sender.failing.Store(false)
	require.NoError(t, w.Submit(context.Background(), sender))
	assert.Equal(t, int32(2), sender.calls.Load())
	assert.True(t, w.State().Submitted)
	assert.False(t, w.State().SendFailed)
}

func TestWizard_BackClearsSendFailure(t *testing.T) {
	w := newTestWizard(t, Prefill{})
	advanceToReview(t, w, NeedRental)

	sender := &fakeSender{}
	sender.failing.Store(true)
	require.ErrorIs(t, w.Submit(context.Background(), sender), ErrTransmission)
	require.True(t, w.State().SendFailed)

	require.NoError(t, w.Back())
	assert.Equal(t, StageCompany, w.State().Stage)
	assert.False(t, w.State().SendFailed)
}

func TestWizard_SecondSubmitWhilePendingIsRejected(t *testing.T) {
	w := newTestWizard(t, Prefill{})
	advanceToReview(t, w, NeedPurchase)

	sender := &blockingSender{entered: make(chan struct{}, 1), release: make(chan struct{})}

	done := make(chan error, 1)
	go func() { done <- w.Submit(context.Background(), sender) }()

	select {
	case <-sender.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first submit never reached the sender")
	}

	assert.True(t, w.State().Sending)
	assert.ErrorIs(t, w.Submit(context.Background(), sender), ErrSubmitInProgress)
	assert.ErrorIs(t, w.SetField(FieldCompany, "Other"), ErrSubmitInProgress)

	close(sender.release)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), sender.calls.Load())
}

func TestWizard_SenderPanicReleasesGuard(t *testing.T) {
	w := newTestWizard(t, Prefill{})
	advanceToReview(t, w, NeedPurchase)

	panicking := SenderFunc(func(context.Context, *Request) error { panic("boom") })
	assert.Panics(t, func() { _ = w.Submit(context.Background(), panicking) })

	st := w.State()
	assert.False(t, st.Sending)
	assert.True(t, st.SendFailed)
	assert.True(t, st.CanSubmit)
}
