// Package batch runs many search queries concurrently against a search
// service.
//
// Queries are dispatched on a bounded worker pool, retried with exponential
// backoff when the request fails, and returned in input order. Progress can
// be reported to any io.Writer.
package batch
