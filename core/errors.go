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

import "errors"

// Request errors
var (
	// ErrEmptyQuery indicates the query is empty or whitespace-only.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrRequestFailed indicates the Search Service could not be reached
	// or answered with a non-success status.
	ErrRequestFailed = errors.New("search request failed")

	// ErrMalformedResponse indicates the Search Service reply could not be
	// decoded or does not match the response contract.
	ErrMalformedResponse = errors.New("malformed search response")
)

// Response validation errors
var (
	// ErrMissingEssays indicates the "essays" field is absent.
	ErrMissingEssays = errors.New("essays field missing")

	// ErrMissingInsights indicates the "insights" field is absent.
	ErrMissingInsights = errors.New("insights field missing")

	// ErrEmptyTitle indicates an essay without a title.
	ErrEmptyTitle = errors.New("essay title cannot be empty")

	// ErrEmptyURL indicates an essay without a URL.
	ErrEmptyURL = errors.New("essay url cannot be empty")

	// ErrInvalidSimilarity indicates a similarity outside [0,1] or not a number.
	ErrInvalidSimilarity = errors.New("similarity must be within [0,1]")
)
