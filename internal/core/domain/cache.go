package domain

import (
	"encoding/json"
	"time"
)

// CacheTier identifies which cache scope holds an entry.
type CacheTier string

const (
	// TierLocal is the cache scope of a single build context.
	TierLocal CacheTier = "local"
	// TierGlobal is the cache scope shared across build contexts.
	TierGlobal CacheTier = "global"
)

// CacheEntry is one content-addressed cache record. Payloads are immutable
// once written; a new fingerprint produces a new entry, never an in-place
// update. HitCount is metadata and advances with each lookup.
type CacheEntry struct {
	SchemaVersion int             `json:"schema_version"`
	Fingerprint   string          `json:"fingerprint"`
	Tier          CacheTier       `json:"tier"`
	Payload       json.RawMessage `json:"payload"`
	CreatedAt     time.Time       `json:"created_at"`
	TTLSeconds    int64           `json:"ttl_seconds"`
	HitCount      int64           `json:"hit_count"`
}

// ExpiresAt returns the instant the entry leaves the cache.
func (e *CacheEntry) ExpiresAt() time.Time {
	return e.CreatedAt.Add(time.Duration(e.TTLSeconds) * time.Second)
}

// Expired reports whether the entry is past its TTL at the given instant.
func (e *CacheEntry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt())
}

// TierStats holds hit and miss counters for one cache tier.
type TierStats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// CacheStats aggregates lookup statistics across tiers.
type CacheStats struct {
	Hits   int64
	Misses int64
	Local  TierStats
	Global TierStats
}
