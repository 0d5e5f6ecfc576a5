package variant

import (
	"net/url"
	"testing"

	"github.com/radshield/radshield-web/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(t *testing.T, slug string) *catalog.Product {
	t.Helper()
	p, ok := catalog.MustDefault().BySlug(slug)
	require.True(t, ok, "missing product %s", slug)
	return p
}

func TestDefaultLead_IsFirstDeclaredVariant(t *testing.T) {
	for _, p := range catalog.MustDefault().All() {
		t.Run(p.Slug, func(t *testing.T) {
			assert.Equal(t, p.Variants[0].Lead, DefaultLead(p))
		})
	}
}

func TestDefaultLead_PanicsWithoutVariants(t *testing.T) {
	assert.Panics(t, func() {
		DefaultLead(&catalog.Product{Slug: "broken"})
	})
}

func TestVariantForLead(t *testing.T) {
	p := product(t, "tablier-plombe-premium")

	v, ok := VariantForLead(p, catalog.Lead050)
	require.True(t, ok)
	assert.Equal(t, []catalog.Size{catalog.SizeM, catalog.SizeL, catalog.SizeXL}, v.Sizes)

	_, ok = VariantForLead(product(t, "protege-thyroide"), catalog.Lead025)
	assert.False(t, ok)
}

func TestIsSizeValidForLead_ExhaustiveAgainstCatalogue(t *testing.T) {
	leads := append([]catalog.LeadEquivalence{""}, catalog.LeadEquivalences...)
	sizes := append([]catalog.Size{""}, catalog.Sizes...)

	for _, p := range catalog.MustDefault().All() {
		for _, lead := range leads {
			for _, size := range sizes {
				want := size == ""
				if !want {
					for _, v := range p.Variants {
						if v.Lead == lead {
							want = v.HasSize(size)
						}
					}
				}
				assert.Equal(t, want, IsSizeValidForLead(p, lead, size),
					"product=%s lead=%q size=%q", p.Slug, lead, size)
			}
		}
	}
}

func TestNewSelection(t *testing.T) {
	tests := []struct {
		slug string
		want Selection
	}{
		{"tablier-plombe-premium", Selection{Lead: catalog.Lead025, Size: catalog.SizeM}},
		{"tablier-plombe-leger", Selection{Lead: catalog.Lead025, Size: catalog.SizeS}},
		{"jupe-gilet-plombes", Selection{Lead: catalog.Lead035, Size: catalog.SizeS}},
		{"paravent-mobile", Selection{Lead: catalog.Lead050, Size: catalog.SizeL}},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			assert.Equal(t, tt.want, NewSelection(product(t, tt.slug)))
		})
	}
}

func TestOnLeadChanged(t *testing.T) {
	p := product(t, "tablier-plombe-premium")

	tests := []struct {
		name    string
		sel     Selection
		newLead catalog.LeadEquivalence
		want    Selection
	}{
		{
			name:    "size kept when offered",
			sel:     Selection{Lead: catalog.Lead025, Size: catalog.SizeL},
			newLead: catalog.Lead050,
			want:    Selection{Lead: catalog.Lead050, Size: catalog.SizeL},
		},
		{
			name:    "size reset to first of new variant",
			sel:     Selection{Lead: catalog.Lead035, Size: catalog.SizeXXL},
			newLead: catalog.Lead050,
			want:    Selection{Lead: catalog.Lead050, Size: catalog.SizeM},
		},
		{
			name:    "absent size picks first",
			sel:     Selection{Lead: catalog.Lead025},
			newLead: catalog.Lead035,
			want:    Selection{Lead: catalog.Lead035, Size: catalog.SizeS},
		},
		{
			name:    "unknown lead clears the selection",
			sel:     Selection{Lead: catalog.Lead025, Size: catalog.SizeM},
			newLead: "1 mm Pb",
			want:    Selection{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OnLeadChanged(p, tt.sel, tt.newLead)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsSizeValidForLead(p, got.Lead, got.Size) || got.Size == "")
		})
	}
}

func TestOnLeadChanged_GradeNotOfferedByProduct(t *testing.T) {
	p := product(t, "tablier-plombe-leger")
	_, offered := VariantForLead(p, catalog.Lead050)
	require.False(t, offered)

	got := OnLeadChanged(p, NewSelection(p), catalog.Lead050)
	assert.Equal(t, Selection{}, got)
	assert.Empty(t, got.Lead)
	assert.Empty(t, got.Size)
}

func TestOnLeadChanged_AlwaysYieldsValidSize(t *testing.T) {
	for _, p := range catalog.MustDefault().All() {
		for _, from := range p.Variants {
			for _, size := range from.Sizes {
				for _, to := range p.Variants {
					got := OnLeadChanged(p, Selection{Lead: from.Lead, Size: size}, to.Lead)
					assert.NotEmpty(t, got.Size)
					assert.True(t, IsSizeValidForLead(p, got.Lead, got.Size),
						"product=%s from=%q/%s to=%q", p.Slug, from.Lead, size, to.Lead)
				}
			}
		}
	}
}

func TestOnSizeChanged(t *testing.T) {
	p := product(t, "tablier-plombe-premium")
	sel := Selection{Lead: catalog.Lead050, Size: catalog.SizeM}

	got, ok := OnSizeChanged(p, sel, catalog.SizeXL)
	assert.True(t, ok)
	assert.Equal(t, catalog.SizeXL, got.Size)

	got, ok = OnSizeChanged(p, sel, catalog.SizeS)
	assert.False(t, ok)
	assert.Equal(t, sel, got)
}

func TestToQueryParams(t *testing.T) {
	tests := []struct {
		name string
		slug string
		lead catalog.LeadEquivalence
		size catalog.Size
		want string
	}{
		{"all fields", "tablier-plombe-premium", catalog.Lead035, catalog.SizeL, "product=tablier-plombe-premium&pb=0%2C35+mm+Pb&size=L"},
		{"no size", "protege-thyroide", catalog.Lead050, "", "product=protege-thyroide&pb=0%2C50+mm+Pb"},
		{"slug only", "calot-plombe", "", "", "product=calot-plombe"},
		{"nothing", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToQueryParams(tt.slug, tt.lead, tt.size))
		})
	}
}

func TestToQueryParams_RoundTripsThroughURLParsing(t *testing.T) {
	q, err := url.ParseQuery(ToQueryParams("tablier-plombe-premium", catalog.Lead035, catalog.SizeL))
	require.NoError(t, err)

	assert.Equal(t, "tablier-plombe-premium", q.Get(ParamProduct))
	assert.Equal(t, "0,35 mm Pb", q.Get(ParamLead))
	assert.Equal(t, "L", q.Get(ParamSize))
}

func TestQuoteLink(t *testing.T) {
	p := product(t, "lunettes-plombees")

	link := QuoteLink("/en/quote", p, Selection{Lead: catalog.Lead050, Size: catalog.SizeM})
	assert.Equal(t, "/en/quote?product=lunettes-plombees&pb=0%2C50+mm+Pb&size=M", link)
}
