package pdf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	doc := Document{
		Title:     "Demande de devis",
		Reference: "Réf. Q-20261016-AB12",
		Date:      "16/10/2026",
		Sections: []Section{
			{
				Heading: "Produit",
				Lines: []Line{
					{Label: "Produit", Value: "Tablier plombé Premium"},
					{Label: "Équivalence plomb", Value: "0,35 mm Pb"},
					{Label: "Taille", Value: "L"},
					{Label: "Quantité", Value: ""},
				},
			},
			{
				Heading: "Société",
				Lines:   []Line{{Label: "Société", Value: "Acme Clinic"}},
			},
		},
		Footer: "Document généré automatiquement.",
	}

	out, err := Render(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRender_LongNotes(t *testing.T) {
	doc := Document{
		Title:    "Quote request",
		Sections: []Section{{Heading: "Notes", Lines: []Line{{Label: "Notes", Value: strings.Repeat("lorem ipsum ", 180)}}}},
	}

	out, err := Render(doc)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
