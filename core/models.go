package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// DefaultLimit is the number of essays requested per search.
const DefaultLimit = 5

// ID is a unique identifier for domain entities.
// Essay IDs are assigned by the Search Service; cache keys are content hashes.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SearchRequest is the body sent to the Search Service.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// NewSearchRequest builds a request for query with the fixed DefaultLimit.
func NewSearchRequest(query string) SearchRequest {
	return SearchRequest{Query: query, Limit: DefaultLimit}
}

// SearchResult is a single essay match returned by the Search Service.
type SearchResult struct {
	Id         ID      `json:"id"`
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"` // In [0,1], assigned by the service
}

// SearchResponse is the decoded Search Service reply.
// Essays are already ordered by descending relevance.
type SearchResponse struct {
	Essays   []SearchResult `json:"essays"`
	Insights string         `json:"insights"`
}

// EssaySummary is one row of the essay listing.
type EssaySummary struct {
	Id    ID     `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}
