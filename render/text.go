package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/essaysearch/page"
)

const (
	insightsHeader = "Key Insights"
	essaysHeader   = "Relevant Essays"
	loadingLine    = "Searching..."
)

// TextRenderer writes page views as plain or colored terminal text.
type TextRenderer struct {
	out     io.Writer
	palette palette
}

// NewTextRenderer creates a renderer writing to w.
func NewTextRenderer(w io.Writer, useColors bool) *TextRenderer {
	return &TextRenderer{
		out:     w,
		palette: palette{enabled: useColors},
	}
}

// Render writes v. Nothing is written for an untouched page.
func (r *TextRenderer) Render(v page.View) error {
	var b strings.Builder

	if v.Loading {
		fmt.Fprintln(&b, r.palette.dim(loadingLine))
	}
	if v.NoResults != "" {
		fmt.Fprintln(&b, r.palette.warn(v.NoResults))
	}

	if len(v.Insights) > 0 {
		r.writeHeader(&b, insightsHeader)
		for _, bullet := range v.Insights {
			fmt.Fprintf(&b, "  %s %s\n", page.InsightDelimiter, bullet)
		}
	}

	if len(v.Essays) > 0 {
		r.writeHeader(&b, essaysHeader)
		for _, card := range v.Essays {
			fmt.Fprintf(&b, "%d. %s  %s\n", card.Rank, r.palette.title(card.Title), r.palette.match(card.Match))
			fmt.Fprintf(&b, "   %s\n", r.palette.link(card.URL))
			fmt.Fprintf(&b, "   %s\n", r.palette.dim(strings.Join(strings.Fields(card.Preview), " ")))
		}
	}

	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *TextRenderer) writeHeader(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n%s\n%s\n", r.palette.header(title), strings.Repeat("-", len(title)))
}
