// Package remote implements service.SearchService against the Search
// Service's JSON/HTTP API:
//
//	POST /search   {"query": "...", "limit": 5} -> {"essays": [...], "insights": "..."}
//	GET  /essays?limit=N&offset=M              -> [{"id", "title", "url"}, ...]
//
// Replies are validated against the response contract. Transport failures and
// non-2xx statuses wrap core.ErrRequestFailed; undecodable or incomplete
// bodies wrap core.ErrMalformedResponse.
package remote
