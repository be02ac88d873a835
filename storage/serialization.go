// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/essaysearch/core"
)

// SearchResultMUS serializes a core.SearchResult.
var SearchResultMUS = searchResultMUS{}

// SearchResponseMUS serializes a core.SearchResponse.
var SearchResponseMUS = searchResponseMUS{}

type searchResultMUS struct{}

func (searchResultMUS) Marshal(v core.SearchResult, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(v.Id), bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.URL, bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += raw.Float64.Marshal(v.Similarity, bs[n:])
	return
}

func (searchResultMUS) Unmarshal(bs []byte) (v core.SearchResult, n int, err error) {
	id, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Id = core.ID(id)

	var n1 int
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.URL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Similarity, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	return
}

func (searchResultMUS) Size(v core.SearchResult) (size int) {
	size = varint.Uint64.Size(uint64(v.Id))
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.URL)
	size += ord.String.Size(v.Content)
	return size + raw.Float64.Size(v.Similarity)
}

type searchResponseMUS struct{}

func (searchResponseMUS) Marshal(v core.SearchResponse, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v.Essays), bs)
	for _, essay := range v.Essays {
		n += SearchResultMUS.Marshal(essay, bs[n:])
	}
	n += ord.String.Marshal(v.Insights, bs[n:])
	return
}

func (searchResponseMUS) Unmarshal(bs []byte) (v core.SearchResponse, n int, err error) {
	count, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	// Every essay takes at least one byte per field
	if count < 0 || count > len(bs)-n {
		err = fmt.Errorf("%w: essay count %d", ErrTruncatedData, count)
		return
	}

	v.Essays = make([]core.SearchResult, count)
	var n1 int
	for i := range v.Essays {
		v.Essays[i], n1, err = SearchResultMUS.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	v.Insights, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (searchResponseMUS) Size(v core.SearchResponse) (size int) {
	size = varint.Int.Size(len(v.Essays))
	for _, essay := range v.Essays {
		size += SearchResultMUS.Size(essay)
	}
	return size + ord.String.Size(v.Insights)
}

// MarshalSearchResponse serializes a SearchResponse to bytes.
func MarshalSearchResponse(resp *core.SearchResponse) []byte {
	buf := make([]byte, SearchResponseMUS.Size(*resp))
	SearchResponseMUS.Marshal(*resp, buf)
	return buf
}

// UnmarshalSearchResponse deserializes a SearchResponse from bytes.
func UnmarshalSearchResponse(data []byte) (*core.SearchResponse, error) {
	resp, n, err := SearchResponseMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return &resp, nil
}
