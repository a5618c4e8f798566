package ports

import (
	"time"

	"go.trai.ch/delta/internal/core/domain"
)

// CacheStore is the two-tier content-addressed cache.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type CacheStore interface {
	// Lookup checks the local tier first, then the global tier. A global
	// hit is promoted into the local tier before being returned. A miss is
	// reported as domain.ErrCacheMiss; corrupt entries are purged and
	// reported as misses, never surfaced as errors.
	Lookup(fingerprint string) (*domain.CacheEntry, error)

	// Store writes a new immutable entry into the given tier. Writes for an
	// existing live fingerprint are no-ops (first writer wins); concurrent
	// writes for the same fingerprint serialize.
	Store(fingerprint string, payload []byte, ttl time.Duration, tier domain.CacheTier) error

	// InvalidateExpired sweeps entries past their TTL from both tiers and
	// returns the number removed.
	InvalidateExpired() (int, error)

	// Stats returns hit and miss counters with a per-tier breakdown.
	Stats() domain.CacheStats

	// Close releases tier resources. The store must not be used afterwards.
	Close() error
}

// CacheFactory opens the tiered cache store for a loaded project: the local
// tier under the project root, the global tier at the configured shared
// path.
type CacheFactory interface {
	Open(project *domain.Project) (CacheStore, error)
}
