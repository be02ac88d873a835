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


package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/poiesic/essaysearch/core"
	"github.com/poiesic/essaysearch/service"
)

// MockService is a test double for service.SearchService.
// It allows custom behavior injection via function fields.
type MockService struct {
	// SearchFunc is called by Search if set.
	// If nil, returns a deterministic response derived from the query.
	SearchFunc func(ctx context.Context, req core.SearchRequest) (*core.SearchResponse, error)

	// ListEssaysFunc is called by ListEssays if set.
	// If nil, returns a deterministic catalogue page.
	ListEssaysFunc func(ctx context.Context, limit, offset int) ([]core.EssaySummary, error)

	mu       sync.Mutex
	calls    int
	requests []core.SearchRequest
}

var _ service.SearchService = (*MockService)(nil)

// NewMockService creates a mock service with default deterministic behavior.
func NewMockService() *MockService {
	return &MockService{}
}

// Search records the request and returns the injected or default response.
func (m *MockService) Search(ctx context.Context, req core.SearchRequest) (*core.SearchResponse, error) {
	m.mu.Lock()
	m.calls++
	m.requests = append(m.requests, req)
	fn := m.SearchFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	return DeterministicResponse(req), nil
}

// ListEssays returns the injected or default catalogue page.
func (m *MockService) ListEssays(ctx context.Context, limit, offset int) ([]core.EssaySummary, error) {
	m.mu.Lock()
	m.calls++
	fn := m.ListEssaysFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, limit, offset)
	}

	essays := make([]core.EssaySummary, 0, limit)
	for i := 0; i < limit; i++ {
		id := core.ID(offset + i + 1)
		essays = append(essays, core.EssaySummary{
			Id:    id,
			Title: fmt.Sprintf("Essay %d", id),
			URL:   fmt.Sprintf("http://essays.test/%d", id),
		})
	}
	return essays, nil
}

// CallCount returns the number of times any method was called.
func (m *MockService) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Requests returns a copy of every Search request received.
func (m *MockService) Requests() []core.SearchRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.SearchRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// Reset clears call tracking and injected behavior.
func (m *MockService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = 0
	m.requests = nil
	m.SearchFunc = nil
	m.ListEssaysFunc = nil
}

// DeterministicResponse builds a single-essay response whose content echoes
// the query, so equal queries always produce equal responses.
func DeterministicResponse(req core.SearchRequest) *core.SearchResponse {
	return &core.SearchResponse{
		Essays: []core.SearchResult{
			{
				Id:         core.IDFromContent(req.Query),
				Title:      "On " + req.Query,
				URL:        "http://essays.test/" + fmt.Sprintf("%d", core.IDFromContent(req.Query)),
				Content:    "An essay about " + req.Query + ".",
				Similarity: 0.5,
			},
		},
		Insights: "• " + req.Query + " matters.",
	}
}
