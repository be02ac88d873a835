package render

import (
	"embed"
	"html"
	"html/template"
	"io"

	"github.com/microcosm-cc/bluemonday"
	"github.com/poiesic/essaysearch/core"
	"github.com/poiesic/essaysearch/page"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))

// HTMLRenderer renders the search page and essay listings as HTML.
type HTMLRenderer struct {
	tmpl   *template.Template
	policy *bluemonday.Policy
}

type pageData struct {
	View  page.View
	Cards []page.Card
}

type essaysData struct {
	Essays     []core.EssaySummary
	Limit      int
	HasPrev    bool
	PrevOffset int
	HasNext    bool
	NextOffset int
}

// NewHTMLRenderer creates a renderer over the embedded templates.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		tmpl:   templates,
		policy: bluemonday.StrictPolicy(),
	}
}

// RenderPage writes the full search page for v.
// Essay previews are stripped of markup before truncation.
func (r *HTMLRenderer) RenderPage(w io.Writer, v page.View) error {
	cards := make([]page.Card, len(v.Essays))
	for i, card := range v.Essays {
		card.Preview = page.Preview(r.plainText(card.Content))
		cards[i] = card
	}
	return r.tmpl.ExecuteTemplate(w, "page", pageData{View: v, Cards: cards})
}

// RenderEssays writes one page of the essay catalogue. A full page implies
// there may be a next one.
func (r *HTMLRenderer) RenderEssays(w io.Writer, essays []core.EssaySummary, limit, offset int) error {
	data := essaysData{
		Essays:     essays,
		Limit:      limit,
		HasPrev:    offset > 0,
		PrevOffset: max(offset-limit, 0),
		HasNext:    limit > 0 && len(essays) >= limit,
		NextOffset: offset + limit,
	}
	return r.tmpl.ExecuteTemplate(w, "essays", data)
}

// plainText strips tags; the template escapes the result again.
func (r *HTMLRenderer) plainText(content string) string {
	return html.UnescapeString(r.policy.Sanitize(content))
}
