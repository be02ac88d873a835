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


// Package service defines the contract with the remote Search Service.
//
// The service performs the semantic search itself (embedding, vector
// retrieval, insight summarization); this package only describes how to talk
// to it. Implementations live in subpackages:
//   - remote: the JSON-over-HTTP client used in production
//   - mock: a test double with injectable behavior
//
// Cached decorates any SearchService with a TTL response cache.
package service
