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


package core

import (
	"fmt"
	"math"
	"strings"
)

// ValidateQuery returns the trimmed query, or ErrEmptyQuery if nothing is left.
func ValidateQuery(query string) (string, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", ErrEmptyQuery
	}
	return trimmed, nil
}

// ValidateSearchResponse validates a decoded SearchResponse against the
// Search Service contract.
//
// Validation rules:
//   - response must not be nil
//   - every essay needs a non-empty Title and URL
//   - every Similarity must be a finite number in [0,1]
//
// NOT validated:
//   - Content (may be empty)
//   - Id uniqueness (the service owns IDs)
//   - field presence (checked by the decoder, see service/http)
func ValidateSearchResponse(resp *SearchResponse) error {
	if resp == nil {
		return fmt.Errorf("%w: response is nil", ErrMalformedResponse)
	}

	for i := range resp.Essays {
		if err := ValidateSearchResult(&resp.Essays[i]); err != nil {
			return fmt.Errorf("%w: essay %d: %w", ErrMalformedResponse, i, err)
		}
	}

	return nil
}

// ValidateSearchResult validates a single essay match.
func ValidateSearchResult(result *SearchResult) error {
	if strings.TrimSpace(result.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(result.URL) == "" {
		return ErrEmptyURL
	}
	if !IsValidSimilarity(result.Similarity) {
		return fmt.Errorf("%w: got %v", ErrInvalidSimilarity, result.Similarity)
	}
	return nil
}

// IsValidSimilarity checks that a score is a finite number in [0,1].
func IsValidSimilarity(score float64) bool {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return false
	}
	return score >= 0 && score <= 1
}
