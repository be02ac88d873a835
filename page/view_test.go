package page

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/poiesic/essaysearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewView_StartupExample(t *testing.T) {
	view := NewView("startups", false, startupResponse())

	assert.Empty(t, view.NoResults)
	assert.True(t, view.HasResults())
	assert.Equal(t, []string{"Focus on users", "Ship fast"}, view.Insights)

	require.Len(t, view.Essays, 1)
	card := view.Essays[0]
	assert.Equal(t, 1, card.Rank)
	assert.Equal(t, "How to Start a Startup", card.Title)
	assert.Equal(t, "http://x", card.URL)
	assert.Equal(t, "87.3% match", card.Match)
	assert.Equal(t, strings.Repeat("A", 300)+"...", card.Preview)
}

func TestNewView_PreservesOrder(t *testing.T) {
	resp := &core.SearchResponse{
		Essays: []core.SearchResult{
			{Id: 3, Title: "Low", URL: "http://c", Similarity: 0.1},
			{Id: 1, Title: "High", URL: "http://a", Similarity: 0.9},
			{Id: 2, Title: "Mid", URL: "http://b", Similarity: 0.5},
		},
	}

	view := NewView("q", false, resp)
	require.Len(t, view.Essays, 3)
	assert.Equal(t, "Low", view.Essays[0].Title)
	assert.Equal(t, "High", view.Essays[1].Title)
	assert.Equal(t, "Mid", view.Essays[2].Title)
	assert.Equal(t, 3, view.Essays[2].Rank)
}

func TestNewView_NoResults(t *testing.T) {
	empty := &core.SearchResponse{Essays: []core.SearchResult{}, Insights: "• unused"}

	tests := []struct {
		name      string
		query     string
		loading   bool
		resp      *core.SearchResponse
		noResults string
	}{
		{name: "empty essays", query: "startups", resp: empty, noResults: `No results found for "startups"`},
		{name: "typed but not submitted", query: "growth", noResults: `No results found for "growth"`},
		{name: "query is quoted literally", query: `say "hi"`, resp: empty, noResults: `No results found for "say "hi""`},
		{name: "no query", query: "", resp: empty},
		{name: "loading", query: "startups", loading: true, resp: empty},
		{name: "has essays", query: "startups", resp: startupResponse()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewView(tt.query, tt.loading, tt.resp)
			assert.Equal(t, tt.noResults, view.NoResults)
			if view.NoResults != "" {
				assert.Empty(t, view.Insights)
				assert.Empty(t, view.Essays)
				assert.False(t, view.HasResults())
			}
		})
	}
}

func TestNewView_SubmitDisabled(t *testing.T) {
	assert.True(t, NewView("", false, nil).SubmitDisabled)
	assert.True(t, NewView("   ", false, nil).SubmitDisabled)
	assert.True(t, NewView("startups", true, nil).SubmitDisabled)
	assert.False(t, NewView("startups", false, nil).SubmitDisabled)
}

func TestNewView_LoadingKeepsPreviousResults(t *testing.T) {
	view := NewView("growth", true, startupResponse())
	assert.True(t, view.Loading)
	assert.Empty(t, view.NoResults)
	assert.Len(t, view.Essays, 1)
}

func TestSplitInsights(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"• Focus on users • Ship fast", []string{"Focus on users", "Ship fast"}},
		{"•a\n•b\n", []string{"a", "b"}},
		{"no delimiter", []string{"no delimiter"}},
		{"", []string{}},
		{" • • ", []string{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitInsights(tt.input), "input %q", tt.input)
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short...", Preview("short"))
	assert.Equal(t, "...", Preview(""))

	exact := strings.Repeat("b", PreviewLength)
	assert.Equal(t, exact+"...", Preview(exact))

	// Truncation counts characters, not bytes
	long := strings.Repeat("é", 400)
	preview := Preview(long)
	assert.Equal(t, PreviewLength+3, utf8.RuneCountInString(preview))
	assert.True(t, utf8.ValidString(preview))
}

func TestFormatMatch(t *testing.T) {
	tests := []struct {
		similarity float64
		want       string
	}{
		{0.873, "87.3% match"},
		{1, "100.0% match"},
		{0, "0.0% match"},
		{0.5, "50.0% match"},
		{0.12345, "12.3% match"},
		{0.8725, "87.3% match"},
		{0.0625, "6.3% match"},
		{0.0125, "1.3% match"},
		{0.9995, "100.0% match"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMatch(tt.similarity))
	}
}
