// Package cache defines the transactional cache used by the gateway for
// pending sign-up state and the service-level access token.
//
// Backends:
//   - memory (in-process, default)
//   - redis (shared, for multi-instance deployments)
package cache

import "time"

// Cache is a byte-value store with per-entry TTL.
//
// Delete is best-effort by contract: it returns nothing and implementations
// swallow backend failures. Entries carry their own TTL as the correctness
// backstop, so a missed delete only delays eviction.
type Cache interface {
	// Get returns the value for key, or false if absent or expired.
	Get(key string) ([]byte, bool)

	// Set stores value under key for the given TTL. ttl must be positive;
	// callers decide what to do with non-positive lifetimes.
	Set(key string, value []byte, ttl time.Duration)

	// Delete removes key. Best-effort.
	Delete(key string)
}
