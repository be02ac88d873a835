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


// Package storage provides the response cache abstraction for essaysearch.
//
// The cache holds Search Service replies for a bounded time so repeated
// queries within a session are answered locally. It is process-lifetime
// only; nothing is written to disk.
//
// # Keys
//
// Entries are keyed by CacheKey, a BLAKE2b content ID of the query and limit:
//
//	key := storage.CacheKey(core.NewSearchRequest("startups"))
//
// # Encoding
//
// Values are encoded with mus-go (see SearchResponseMUS). The encoding is
// compact and allocation-light; it is not a stable on-disk format.
//
// # Usage
//
// Use in tests with an in-memory backend:
//
//	cache, backend, err := badger.NewMemoryCache()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
// # Thread Safety
//
// All cache implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
