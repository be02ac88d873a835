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


// Package page implements the search page state machine.
//
// A Page holds the typed query, the last successful response and a loading
// flag. Submissions go through a single guarded path, whether triggered by
// the search button (Activate) or the Enter key (HandleKey):
//   - blank queries are rejected without a request
//   - submissions while a request is in flight are rejected
//   - failed requests are logged and swallowed, leaving prior results in place
//
// View derives the render-ready state consumed by the render package.
package page
