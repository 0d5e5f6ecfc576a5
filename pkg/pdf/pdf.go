// Package pdf renders simple labelled summaries, such as a quote request
// recap, to PDF with maroto.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Line is one label/value pair
type Line struct {
	Label string
	Value string
}

// Section groups lines under a heading
type Section struct {
	Heading string
	Lines   []Line
}

// Document is the content of a summary
type Document struct {
	Title     string
	Reference string
	Date      string
	Sections  []Section
	Footer    string
	PageLabel string // e.g. "Page {current} / {total}"
}

var (
	muted   = &props.Color{Red: 90, Green: 90, Blue: 90}
	accent  = &props.Color{Red: 0, Green: 84, Blue: 147}
	zebraBg = &props.Color{Red: 244, Green: 246, Blue: 249}
)

// Render returns the PDF bytes of doc
func Render(doc Document) ([]byte, error) {
	pageLabel := doc.PageLabel
	if pageLabel == "" {
		pageLabel = "{current} / {total}"
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: pageLabel,
			Place:   props.RightBottom,
			Size:    7,
			Color:   muted,
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, doc)
	for _, s := range doc.Sections {
		addSection(m, s)
	}
	if doc.Footer != "" {
		m.AddRows(row.New(6))
		m.AddRows(text.NewRow(10, doc.Footer, props.Text{Size: 8, Color: muted, Align: align.Left}))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return out.GetBytes(), nil
}

func addHeader(m core.Maroto, doc Document) {
	m.AddRows(
		row.New(14).Add(
			col.New(12).Add(
				text.New(doc.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: accent,
				}),
			),
		),
		row.New(8).Add(
			col.New(6).Add(
				text.New(doc.Reference, props.Text{Size: 9, Align: align.Left, Color: muted}),
			),
			col.New(6).Add(
				text.New(doc.Date, props.Text{Size: 9, Align: align.Right, Color: muted}),
			),
		),
	)
	m.AddRows(row.New(4))
}

func addSection(m core.Maroto, s Section) {
	m.AddRows(
		row.New(9).Add(
			col.New(12).Add(
				text.New(s.Heading, props.Text{Size: 11, Style: fontstyle.Bold, Top: 2}),
			),
		),
	)

	for i, l := range s.Lines {
		value := l.Value
		if value == "" {
			value = "-"
		}
		r := row.New(7).Add(
			col.New(4).Add(text.New(l.Label, props.Text{Size: 9, Color: muted, Top: 1})),
			col.New(8).Add(text.New(value, props.Text{Size: 9, Top: 1})),
		)
		if i%2 == 0 {
			r.WithStyle(&props.Cell{BackgroundColor: zebraBg})
		}
		m.AddRows(r)
	}
	m.AddRows(row.New(3))
}
