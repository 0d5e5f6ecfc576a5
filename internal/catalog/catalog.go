// Package catalog holds the immutable product reference data and the
// catalogue listing logic (filtering, sorting, facets).
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/radshield/radshield-web/pkg/slug"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOrder selects how Filter orders its results
type SortOrder string

const (
	SortFeatured  SortOrder = "featured"
	SortTitleAsc  SortOrder = "title-asc"
	SortTitleDesc SortOrder = "title-desc"
	SortVariants  SortOrder = "variants"
)

// ParseSortOrder falls back to SortFeatured for unknown values
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortTitleAsc, SortTitleDesc, SortVariants:
		return SortOrder(s)
	default:
		return SortFeatured
	}
}

// Filter narrows a catalogue listing. Zero values mean "any".
type Filter struct {
	Category Category
	Lead     LeadEquivalence
	Size     Size
	Query    string
	Locale   string
}

// Facet is a category with the number of products in it
type Facet struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// Catalog is the read-only product index. It is safe for concurrent use.
type Catalog struct {
	products []Product
	bySlug   map[string]int
}

// New validates products and builds the index. A product with no variants,
// a duplicate grade, an empty size set or an unknown enumeration value is
// rejected: the rest of the system relies on those invariants.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, len(products)),
		bySlug:   make(map[string]int, len(products)),
	}
	copy(c.products, products)

	for i := range c.products {
		p := &c.products[i]
		if !slug.IsCanonical(p.Slug) {
			return nil, fmt.Errorf("product #%d: slug %q is not canonical", i, p.Slug)
		}
		if _, dup := c.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("duplicate product slug %q", p.Slug)
		}
		if _, ok := ParseCategory(string(p.Category)); !ok {
			return nil, fmt.Errorf("product %q: unknown category %q", p.Slug, p.Category)
		}
		if len(p.Variants) == 0 {
			return nil, fmt.Errorf("product %q has no variants", p.Slug)
		}

		seen := make(map[LeadEquivalence]struct{}, len(p.Variants))
		for _, v := range p.Variants {
			if _, ok := ParseLeadEquivalence(string(v.Lead)); !ok {
				return nil, fmt.Errorf("product %q: unknown lead equivalence %q", p.Slug, v.Lead)
			}
			if _, dup := seen[v.Lead]; dup {
				return nil, fmt.Errorf("product %q: duplicate variant for %q", p.Slug, v.Lead)
			}
			seen[v.Lead] = struct{}{}

			if len(v.Sizes) == 0 {
				return nil, fmt.Errorf("product %q: variant %q has no sizes", p.Slug, v.Lead)
			}
			for _, s := range v.Sizes {
				if _, ok := ParseSize(string(s)); !ok {
					return nil, fmt.Errorf("product %q: variant %q: unknown size %q", p.Slug, v.Lead, s)
				}
			}
		}

		if p.DefaultSize != "" && !p.OffersSize(p.DefaultSize) {
			return nil, fmt.Errorf("product %q: default size %q is not offered", p.Slug, p.DefaultSize)
		}

		c.bySlug[p.Slug] = i
	}

	return c, nil
}

// MustDefault builds the catalogue from Products and panics if the reference data is broken.
func MustDefault() *Catalog {
	c, err := New(Products)
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid reference data: %v", err))
	}
	return c
}

// BySlug returns the product with the given slug
func (c *Catalog) BySlug(slug string) (*Product, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return nil, false
	}
	return &c.products[i], true
}

// All returns every product in featured order
func (c *Catalog) All() []*Product {
	out := make([]*Product, 0, len(c.products))
	for i := range c.products {
		out = append(out, &c.products[i])
	}
	return out
}

// Filter returns the products matching f, ordered by order
func (c *Catalog) Filter(f Filter, order SortOrder) []*Product {
	query := slug.Fold(f.Query)

	out := make([]*Product, 0, len(c.products))
	for i := range c.products {
		p := &c.products[i]
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Lead != "" && !hasLead(p, f.Lead) {
			continue
		}
		if f.Size != "" && !matchesSize(p, f.Lead, f.Size) {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		out = append(out, p)
	}

	switch order {
	case SortTitleAsc, SortTitleDesc:
		col := collate.New(collatorTag(f.Locale), collate.IgnoreCase, collate.IgnoreDiacritics)
		sort.SliceStable(out, func(i, j int) bool {
			cmp := col.CompareString(out[i].Title.In(f.Locale), out[j].Title.In(f.Locale))
			if order == SortTitleDesc {
				return cmp > 0
			}
			return cmp < 0
		})
	case SortVariants:
		sort.SliceStable(out, func(i, j int) bool {
			return len(out[i].Variants) > len(out[j].Variants)
		})
	}

	return out
}

// Facets counts products per category, in category enumeration order.
// Categories without products are omitted.
func (c *Catalog) Facets() []Facet {
	counts := make(map[Category]int, len(Categories))
	for i := range c.products {
		counts[c.products[i].Category]++
	}

	facets := make([]Facet, 0, len(Categories))
	for _, cat := range Categories {
		if n := counts[cat]; n > 0 {
			facets = append(facets, Facet{Category: cat, Count: n})
		}
	}
	return facets
}

func hasLead(p *Product, lead LeadEquivalence) bool {
	for _, v := range p.Variants {
		if v.Lead == lead {
			return true
		}
	}
	return false
}

// matchesSize checks the size against the chosen grade when one is set,
// otherwise against any grade.
func matchesSize(p *Product, lead LeadEquivalence, size Size) bool {
	for _, v := range p.Variants {
		if lead != "" && v.Lead != lead {
			continue
		}
		if v.HasSize(size) {
			return true
		}
	}
	return false
}

func matchesQuery(p *Product, query string) bool {
	haystack := []string{p.Slug, p.Title.FR, p.Title.EN, p.Summary.FR, p.Summary.EN}
	for _, h := range haystack {
		if strings.Contains(slug.Fold(h), query) {
			return true
		}
	}
	return false
}

func collatorTag(locale string) language.Tag {
	if locale == "en" {
		return language.English
	}
	return language.French
}
