// Package httputil wraps the outbound HTTP calls made by the
// documentation checker with retry logic.
//
// Reference pages answer most requests instantly but occasionally drop a
// connection, rate-limit, or return a 5xx. [Retry] and [RetryWithBackoff]
// re-run the fetch with exponential backoff, doubling the delay after
// each failed attempt, before the checker degrades the section to "does
// not exist". Only errors wrapped in [RetryableError] are retried;
// anything definitive (a 404, unparseable markup) returns immediately.
//
// Defaults are three attempts starting from a one-second backoff.
// Response caching is the cache package's concern, behind its pluggable
// backends (file, Redis, MongoDB).
package httputil
