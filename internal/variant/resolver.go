// Package variant keeps a (lead equivalence, size) selection consistent with
// a product's declared variants and turns it into a quote deep link.
//
// When the lead changes and the current size is not offered at the new
// grade, the size is reset to the first size of the new variant. The product
// page and the quote wizard both use this policy.
package variant

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/radshield/radshield-web/internal/catalog"
)

// Query parameter names shared by product links and the quote wizard
const (
	ParamProduct = "product"
	ParamLead    = "pb"
	ParamSize    = "size"
)

// Selection is the user's current choice on a product. Empty fields are absent.
type Selection struct {
	Lead catalog.LeadEquivalence `json:"pb,omitempty"`
	Size catalog.Size            `json:"size,omitempty"`
}

// DefaultLead returns the grade of the first declared variant.
// The catalogue guarantees every product has one; a product without variants
// is a content defect and panics.
func DefaultLead(p *catalog.Product) catalog.LeadEquivalence {
	if len(p.Variants) == 0 {
		panic(fmt.Sprintf("variant: product %q has no variants", p.Slug))
	}
	return p.Variants[0].Lead
}

// VariantForLead returns the variant offered at lead
func VariantForLead(p *catalog.Product, lead catalog.LeadEquivalence) (catalog.Variant, bool) {
	for _, v := range p.Variants {
		if v.Lead == lead {
			return v, true
		}
	}
	return catalog.Variant{}, false
}

// IsSizeValidForLead is true when size is absent or offered at lead.
func IsSizeValidForLead(p *catalog.Product, lead catalog.LeadEquivalence, size catalog.Size) bool {
	if size == "" {
		return true
	}
	v, ok := VariantForLead(p, lead)
	if !ok {
		return false
	}
	return v.HasSize(size)
}

// NewSelection returns the default selection for p: its default lead and,
// for that grade, the product's default size if offered, else the first size.
func NewSelection(p *catalog.Product) Selection {
	lead := DefaultLead(p)
	v, _ := VariantForLead(p, lead)

	size := v.Sizes[0]
	if p.DefaultSize != "" && v.HasSize(p.DefaultSize) {
		size = p.DefaultSize
	}
	return Selection{Lead: lead, Size: size}
}

// OnLeadChanged applies newLead to sel. A size the new variant does not offer
// is replaced by the variant's first size. A lead that matches no variant
// clears the whole selection, so a Selection never names a missing variant.
func OnLeadChanged(p *catalog.Product, sel Selection, newLead catalog.LeadEquivalence) Selection {
	v, ok := VariantForLead(p, newLead)
	if !ok {
		return Selection{}
	}
	sel.Lead = newLead
	if sel.Size == "" || !v.HasSize(sel.Size) {
		sel.Size = v.Sizes[0]
	}
	return sel
}

// OnSizeChanged applies size to sel when it is valid for the selected lead.
// It reports whether the size was accepted.
func OnSizeChanged(p *catalog.Product, sel Selection, size catalog.Size) (Selection, bool) {
	if !IsSizeValidForLead(p, sel.Lead, size) {
		return sel, false
	}
	sel.Size = size
	return sel, true
}

// ToQueryParams builds "product=<slug>&pb=<lead>&size=<size>", omitting
// absent fields. Values are query-escaped.
func ToQueryParams(slug string, lead catalog.LeadEquivalence, size catalog.Size) string {
	parts := make([]string, 0, 3)
	if slug != "" {
		parts = append(parts, ParamProduct+"="+url.QueryEscape(slug))
	}
	if lead != "" {
		parts = append(parts, ParamLead+"="+url.QueryEscape(string(lead)))
	}
	if size != "" {
		parts = append(parts, ParamSize+"="+url.QueryEscape(string(size)))
	}
	return strings.Join(parts, "&")
}

// QuoteLink returns the wizard deep link for sel on p under basePath (e.g. "/fr/devis").
func QuoteLink(basePath string, p *catalog.Product, sel Selection) string {
	q := ToQueryParams(p.Slug, sel.Lead, sel.Size)
	if q == "" {
		return basePath
	}
	return basePath + "?" + q
}
