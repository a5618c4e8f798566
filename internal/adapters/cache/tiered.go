package cache

import (
	"errors"
	"sync/atomic"
	"time"

	"go.trai.ch/delta/internal/core/domain"
	"go.trai.ch/delta/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

var _ ports.CacheStore = (*Tiered)(nil)

// tier is the contract shared by the local and global stores.
type tier interface {
	Get(fingerprint string, now time.Time) (*domain.CacheEntry, error)
	Put(entry *domain.CacheEntry, now time.Time) error
	Touch(fingerprint string, now time.Time) error
	Sweep(now time.Time) (int, error)
	Len() (int, error)
	Close() error
}

// Tiered composes the local and global tiers behind ports.CacheStore.
// Lookups check local first and promote global hits into the local tier.
// Concurrent stores for the same fingerprint and tier serialize through a
// singleflight group: the second caller observes the first's result.
type Tiered struct {
	local  tier
	global tier
	logger ports.Logger
	now    func() time.Time

	writes singleflight.Group

	localHits    atomic.Int64
	localMisses  atomic.Int64
	globalHits   atomic.Int64
	globalMisses atomic.Int64
}

// NewTiered creates the tiered store over the given tiers.
func NewTiered(local *LocalTier, global *GlobalTier, logger ports.Logger) *Tiered {
	return &Tiered{
		local:  local,
		global: global,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the store's clock. Used by tests to control TTL
// expiry.
func (t *Tiered) WithClock(now func() time.Time) *Tiered {
	t.now = now
	return t
}

// Lookup checks the local tier, then the global tier. On a global hit the
// entry is copied into the local tier before being returned so subsequent
// lookups resolve locally. Corrupt entries have been purged by the tier and
// count as misses.
func (t *Tiered) Lookup(fingerprint string) (*domain.CacheEntry, error) {
	now := t.now()

	entry, err := t.local.Get(fingerprint, now)
	if err == nil {
		t.localHits.Add(1)
		entry.HitCount++
		if err := t.local.Touch(fingerprint, now); err != nil {
			t.logger.Warn("failed to persist local hit count")
		}
		return entry, nil
	}
	if !isMiss(err) {
		return nil, err
	}
	t.localMisses.Add(1)

	entry, err = t.global.Get(fingerprint, now)
	if err == nil {
		t.globalHits.Add(1)
		entry.HitCount++
		if err := t.global.Touch(fingerprint, now); err != nil {
			t.logger.Warn("failed to persist global hit count")
		}

		promoted := *entry
		promoted.Tier = domain.TierLocal
		if err := t.local.Put(&promoted, now); err != nil {
			t.logger.Warn("failed to promote cache entry to local tier")
		}
		return entry, nil
	}
	if !isMiss(err) {
		return nil, err
	}
	t.globalMisses.Add(1)

	return nil, domain.ErrCacheMiss
}

// Store writes a new immutable entry into the given tier. Writes are
// content-addressed and effectively append-only: a store for a live
// fingerprint is a no-op.
func (t *Tiered) Store(fingerprint string, payload []byte, ttl time.Duration, tierName domain.CacheTier) error {
	target, err := t.tierFor(tierName)
	if err != nil {
		return err
	}

	now := t.now()
	entry := &domain.CacheEntry{
		SchemaVersion: domain.SchemaVersion,
		Fingerprint:   fingerprint,
		Tier:          tierName,
		Payload:       payload,
		CreatedAt:     now,
		TTLSeconds:    int64(ttl / time.Second),
	}

	key := string(tierName) + "/" + fingerprint
	_, err, _ = t.writes.Do(key, func() (interface{}, error) {
		return nil, target.Put(entry, now)
	})
	return err
}

// InvalidateExpired sweeps both tiers and returns the number of entries
// removed.
func (t *Tiered) InvalidateExpired() (int, error) {
	now := t.now()

	localRemoved, err := t.local.Sweep(now)
	if err != nil {
		return 0, err
	}
	globalRemoved, err := t.global.Sweep(now)
	if err != nil {
		return localRemoved, err
	}
	return localRemoved + globalRemoved, nil
}

// Stats returns hit and miss counters with a per-tier breakdown.
func (t *Tiered) Stats() domain.CacheStats {
	localLen, _ := t.local.Len()
	globalLen, _ := t.global.Len()

	stats := domain.CacheStats{
		Local: domain.TierStats{
			Hits:    t.localHits.Load(),
			Misses:  t.localMisses.Load(),
			Entries: localLen,
		},
		Global: domain.TierStats{
			Hits:    t.globalHits.Load(),
			Misses:  t.globalMisses.Load(),
			Entries: globalLen,
		},
	}
	stats.Hits = stats.Local.Hits + stats.Global.Hits
	// A request that misses both tiers is one logical miss.
	stats.Misses = stats.Global.Misses
	return stats
}

// Close releases both tiers.
func (t *Tiered) Close() error {
	return errors.Join(t.local.Close(), t.global.Close())
}

func (t *Tiered) tierFor(name domain.CacheTier) (tier, error) {
	switch name {
	case domain.TierLocal:
		return t.local, nil
	case domain.TierGlobal:
		return t.global, nil
	default:
		return nil, zerr.With(zerr.New("unknown cache tier"), "tier", string(name))
	}
}

// isMiss reports whether the tier error counts as a miss: a plain miss or a
// corrupt entry the tier already purged.
func isMiss(err error) bool {
	return errors.Is(err, domain.ErrCacheMiss) || errors.Is(err, domain.ErrCacheCorrupt)
}
