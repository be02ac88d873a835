package page

import (
	"fmt"
	"math"
	"strings"
)

const (
	// InsightDelimiter separates insight items in a response.
	InsightDelimiter = "•"

	// PreviewLength is the number of characters kept in a content preview.
	PreviewLength = 300

	previewSuffix = "..."
)

// SplitInsights splits an insights string on the bullet delimiter,
// dropping blank segments.
func SplitInsights(insights string) []string {
	parts := strings.Split(insights, InsightDelimiter)
	bullets := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			bullets = append(bullets, trimmed)
		}
	}
	return bullets
}

// Preview returns the first PreviewLength characters of content followed by
// an ellipsis. The ellipsis is always appended.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) > PreviewLength {
		runes = runes[:PreviewLength]
	}
	return string(runes) + previewSuffix
}

// FormatMatch formats a similarity score as a percentage with one decimal.
// Halves round away from zero, so 0.8725 shows as 87.3%.
func FormatMatch(similarity float64) string {
	percent := math.Round(similarity*100*10) / 10
	return fmt.Sprintf("%.1f%% match", percent)
}

// NoResultsMessage is shown when a typed query has nothing to display.
func NoResultsMessage(query string) string {
	return `No results found for "` + query + `"`
}
