// Package retry provides a small exponential-backoff retry helper used by
// the cache and store backends when talking to an external service (Redis,
// MongoDB) that may be transiently unavailable.
package retry
