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


package page

import (
	"errors"

	"github.com/poiesic/essaysearch/core"
)

var (
	// ErrServiceRequired is returned when a search service is not provided.
	ErrServiceRequired = errors.New("search service required")

	// ErrSubmitInFlight is returned when a submission is attempted while
	// another is still loading.
	ErrSubmitInFlight = errors.New("submission already in flight")

	// ErrEmptyQuery is returned when submitting a blank query.
	ErrEmptyQuery = core.ErrEmptyQuery
)
