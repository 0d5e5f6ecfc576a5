package catalog

// LeadEquivalence is the shielding grade of a garment, expressed as an
// equivalent thickness of lead (e.g. "0,35 mm Pb").
type LeadEquivalence string

const (
	Lead025 LeadEquivalence = "0,25 mm Pb"
	Lead035 LeadEquivalence = "0,35 mm Pb"
	Lead050 LeadEquivalence = "0,50 mm Pb"
)

// LeadEquivalences lists every grade in ascending protection order
var LeadEquivalences = []LeadEquivalence{Lead025, Lead035, Lead050}

// ParseLeadEquivalence returns the grade matching s exactly
func ParseLeadEquivalence(s string) (LeadEquivalence, bool) {
	for _, l := range LeadEquivalences {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

var Sizes = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}

// ParseSize returns the size matching s exactly
func ParseSize(s string) (Size, bool) {
	for _, sz := range Sizes {
		if string(sz) == s {
			return sz, true
		}
	}
	return "", false
}

type Category string

const (
	CategoryAprons         Category = "aprons"
	CategoryThyroidShields Category = "thyroid-shields"
	CategoryGlasses        Category = "glasses"
	CategoryCaps           Category = "caps"
	CategoryGloves         Category = "gloves"
	CategoryScreens        Category = "screens"
)

var Categories = []Category{
	CategoryAprons,
	CategoryThyroidShields,
	CategoryGlasses,
	CategoryCaps,
	CategoryGloves,
	CategoryScreens,
}

// ParseCategory returns the category matching s exactly
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Text is a bilingual string
type Text struct {
	FR string `json:"fr"`
	EN string `json:"en"`
}

// In returns the text for locale, falling back to French.
func (t Text) In(locale string) string {
	if locale == "en" && t.EN != "" {
		return t.EN
	}
	return t.FR
}

// Variant is one lead grade of a product together with the sizes offered at that grade.
type Variant struct {
	Lead         LeadEquivalence `json:"pb"`
	Sizes        []Size          `json:"sizes"`
	TechSheetKey string          `json:"techSheetKey,omitempty"`
}

// HasSize reports whether the variant is offered in size
func (v Variant) HasSize(size Size) bool {
	for _, s := range v.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// Product is an immutable catalogue entry
type Product struct {
	Slug        string    `json:"slug"`
	Title       Text      `json:"title"`
	Summary     Text      `json:"summary"`
	Category    Category  `json:"category"`
	Variants    []Variant `json:"variants"`
	DefaultSize Size      `json:"defaultSize,omitempty"`
	Specs       []Spec    `json:"specs,omitempty"`
	Highlights  []Text    `json:"highlights,omitempty"`
	Image       string    `json:"image,omitempty"`
}

// Spec is a labelled technical characteristic
type Spec struct {
	Label Text `json:"label"`
	Value Text `json:"value"`
}

// Leads returns the grades the product is offered in, in declared order
func (p *Product) Leads() []LeadEquivalence {
	leads := make([]LeadEquivalence, 0, len(p.Variants))
	for _, v := range p.Variants {
		leads = append(leads, v.Lead)
	}
	return leads
}

// OffersSize reports whether any variant of the product is offered in size
func (p *Product) OffersSize(size Size) bool {
	for _, v := range p.Variants {
		if v.HasSize(size) {
			return true
		}
	}
	return false
}
