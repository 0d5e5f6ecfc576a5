package quote

import (
	"context"

	"github.com/radshield/radshield-web/internal/catalog"
)

// Need is a category of customer intent
type Need string

const (
	NeedPurchase       Need = "purchase"
	NeedRental         Need = "rental"
	NeedQualityControl Need = "quality-control"
	NeedCleaning       Need = "cleaning"
	NeedMixed          Need = "mixed"
)

// Needs lists every need in display order
var Needs = []Need{NeedPurchase, NeedRental, NeedQualityControl, NeedCleaning, NeedMixed}

// ParseNeed returns the need matching s exactly
func ParseNeed(s string) (Need, bool) {
	for _, n := range Needs {
		if string(n) == s {
			return n, true
		}
	}
	return "", false
}

// Request is the finalized quote request handed to the notification sender.
// It only exists once every stage gate and the submit check have passed.
type Request struct {
	Company  string                  `json:"company" validate:"required,max=200"`
	Contact  string                  `json:"contact" validate:"required,max=200"`
	Email    string                  `json:"email" validate:"required,email,max=254"`
	Phone    string                  `json:"phone,omitempty" validate:"omitempty,max=40"`
	Needs    []Need                  `json:"needs" validate:"required,min=1,dive,need"`
	Product  string                  `json:"product,omitempty" validate:"omitempty,max=120"`
	Lead     catalog.LeadEquivalence `json:"pb,omitempty" validate:"omitempty,lead"`
	Size     catalog.Size            `json:"size,omitempty" validate:"omitempty,size"`
	Quantity int                     `json:"quantity,omitempty" validate:"omitempty,gt=0,lte=100000"`
	Deadline string                  `json:"deadline,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Address  string                  `json:"address,omitempty" validate:"omitempty,max=500"`
	Notes    string                  `json:"notes,omitempty" validate:"omitempty,max=2000"`

	// Locale is the language the customer used; not user-editable
	Locale string `json:"locale,omitempty"`
}

// Sender delivers a finalized request. Any error is treated as an opaque
// transmission failure.
type Sender interface {
	SendQuote(ctx context.Context, req *Request) error
}

// SenderFunc adapts a function to Sender
type SenderFunc func(ctx context.Context, req *Request) error

func (f SenderFunc) SendQuote(ctx context.Context, req *Request) error {
	return f(ctx, req)
}

// Catalog is the product lookup the wizard needs for prefill and variant reconciliation
type Catalog interface {
	BySlug(slug string) (*catalog.Product, bool)
}
