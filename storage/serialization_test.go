package storage

import (
	"math"
	"testing"

	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/essaysearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResponse() *core.SearchResponse {
	return &core.SearchResponse{
		Essays: []core.SearchResult{
			{
				Id:         1,
				Title:      "How to Start a Startup",
				URL:        "http://paulgraham.com/start.html",
				Content:    "You need three things to create a successful startup…",
				Similarity: 0.873,
			},
			{
				Id:         core.ID(math.MaxUint64),
				Title:      "Startup = Growth",
				URL:        "http://paulgraham.com/growth.html",
				Similarity: 0,
			},
		},
		Insights: "• Focus on users\n• Ship fast",
	}
}

func TestMarshalUnmarshalSearchResponse(t *testing.T) {
	tests := []struct {
		name string
		resp *core.SearchResponse
	}{
		{"populated", sampleResponse()},
		{"no essays", &core.SearchResponse{Essays: []core.SearchResult{}, Insights: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalSearchResponse(tt.resp)
			assert.Len(t, data, SearchResponseMUS.Size(*tt.resp))

			decoded, err := UnmarshalSearchResponse(data)
			require.NoError(t, err)
			assert.Equal(t, tt.resp, decoded)
		})
	}
}

func TestUnmarshalSearchResponse_Invalid(t *testing.T) {
	valid := MarshalSearchResponse(sampleResponse())

	hugeCount := make([]byte, varint.Int.Size(1<<20))
	varint.Int.Marshal(1<<20, hugeCount)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"truncated", valid[:len(valid)/2]},
		{"trailing bytes", append(append([]byte{}, valid...), 0x00)},
		{"essay count exceeds data", hugeCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := UnmarshalSearchResponse(tt.data)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrSerializationFailed)
		})
	}
}

func TestCacheKey(t *testing.T) {
	a := CacheKey(core.NewSearchRequest("startups"))
	assert.Equal(t, a, CacheKey(core.NewSearchRequest("startups")))
	assert.NotEqual(t, a, CacheKey(core.NewSearchRequest("growth")))
	assert.NotEqual(t, a, CacheKey(core.SearchRequest{Query: "startups", Limit: 10}))
}
