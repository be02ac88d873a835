package page

import (
	"strings"

	"github.com/poiesic/essaysearch/core"
)

// Card is one rendered essay.
type Card struct {
	Rank       int
	Title      string
	URL        string
	Similarity float64
	Match      string
	Preview    string

	// Content is the untruncated essay text as received.
	Content string
}

// View is the render-ready derivation of page state.
type View struct {
	Query          string
	Loading        bool
	SubmitDisabled bool

	// NoResults is set when a typed query has nothing to show.
	// It is mutually exclusive with Insights and Essays.
	NoResults string

	Insights []string
	Essays   []Card
}

// HasResults reports whether the view carries a response to display.
func (v View) HasResults() bool {
	return v.NoResults == "" && (len(v.Insights) > 0 || len(v.Essays) > 0)
}

// NewView derives a View from page state.
//
// If a query has been typed, no request is loading, and there is either no
// response or an empty essay list, the view carries only the no-results
// message. Otherwise a present response contributes its insight bullets and
// its essays in the order received.
func NewView(query string, loading bool, resp *core.SearchResponse) View {
	v := View{
		Query:          query,
		Loading:        loading,
		SubmitDisabled: loading || strings.TrimSpace(query) == "",
	}

	if query != "" && !loading && (resp == nil || len(resp.Essays) == 0) {
		v.NoResults = NoResultsMessage(query)
		return v
	}
	if resp == nil {
		return v
	}

	v.Insights = SplitInsights(resp.Insights)
	v.Essays = make([]Card, 0, len(resp.Essays))
	for i, essay := range resp.Essays {
		v.Essays = append(v.Essays, Card{
			Rank:       i + 1,
			Title:      essay.Title,
			URL:        essay.URL,
			Similarity: essay.Similarity,
			Match:      FormatMatch(essay.Similarity),
			Preview:    Preview(essay.Content),
			Content:    essay.Content,
		})
	}
	return v
}
