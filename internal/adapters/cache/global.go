package cache

import (
	"encoding/binary"
	"encoding/json"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
	"go.trai.ch/delta/internal/core/domain"
	"go.trai.ch/zerr"
)

var (
	bucketEntries = []byte("entries")
	bucketIndex   = []byte("index")
)

const (
	// openTimeout bounds waiting on the bbolt file lock held by another
	// process sharing the global tier.
	openTimeout = 5 * time.Second

	putAttempts    = 3
	putBackoffBase = 50 * time.Millisecond
)

// GlobalTier is the shared cache tier backed by a single bbolt file. The
// entries bucket holds JSON-encoded entries; the index bucket maps
// fingerprint to expiry so TTL checks do not decode payloads. bbolt
// transactions give readers a consistent view, so a reader never observes a
// partially written entry.
type GlobalTier struct {
	db *bbolt.DB
}

// NewGlobalTier opens (or creates) the global tier at the given path.
func NewGlobalTier(path string) (*GlobalTier, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, "failed to create global cache directory")
	}

	db, err := bbolt.Open(path, domain.PrivateFilePerm, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open global cache"), "path", path)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketEntries, bucketIndex} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return zerr.Wrap(err, "failed to create bucket")
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &GlobalTier{db: db}, nil
}

// Get retrieves the entry for a fingerprint. Expired entries are misses and
// are removed; undecodable entries are purged and reported as
// domain.ErrCacheCorrupt.
func (t *GlobalTier) Get(fingerprint string, now time.Time) (*domain.CacheEntry, error) {
	var entry *domain.CacheEntry
	expired := false
	corrupt := false

	err := t.db.View(func(tx *bbolt.Tx) error {
		key := []byte(fingerprint)

		idx := tx.Bucket(bucketIndex).Get(key)
		if idx == nil {
			return domain.ErrCacheMiss
		}
		if len(idx) != 8 {
			corrupt = true
			return nil
		}
		expiry := time.Unix(0, int64(binary.BigEndian.Uint64(idx))) //nolint:gosec // Stored by us
		if !now.Before(expiry) {
			expired = true
			return nil
		}

		data := tx.Bucket(bucketEntries).Get(key)
		if data == nil {
			corrupt = true
			return nil
		}

		var e domain.CacheEntry
		if err := json.Unmarshal(data, &e); err != nil || e.SchemaVersion != domain.SchemaVersion {
			corrupt = true
			return nil
		}
		entry = &e
		return nil
	})
	if err != nil {
		return nil, err
	}

	if corrupt {
		t.remove(fingerprint)
		return nil, domain.ErrCacheCorrupt
	}
	if expired {
		t.remove(fingerprint)
		return nil, domain.ErrCacheMiss
	}

	return entry, nil
}

// Put writes a new entry if the fingerprint is not already live: first
// writer wins inside a single update transaction. Transient write failures
// are retried with jittered backoff; after the budget the call fails with
// domain.ErrLockTimeout.
func (t *GlobalTier) Put(entry *domain.CacheEntry, now time.Time) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	key := []byte(entry.Fingerprint)
	expiry := make([]byte, 8)
	binary.BigEndian.PutUint64(expiry, uint64(entry.ExpiresAt().UnixNano())) //nolint:gosec // Monotonic range

	var lastErr error
	for attempt := 0; attempt < putAttempts; attempt++ {
		if attempt > 0 {
			backoff := putBackoffBase << attempt
			time.Sleep(backoff + rand.N(backoff)) //nolint:gosec // Jitter, not crypto
		}

		lastErr = t.db.Update(func(tx *bbolt.Tx) error {
			idx := tx.Bucket(bucketIndex).Get(key)
			if idx != nil && len(idx) == 8 {
				liveUntil := time.Unix(0, int64(binary.BigEndian.Uint64(idx))) //nolint:gosec // Stored by us
				if now.Before(liveUntil) {
					// Entry is live; first writer already won.
					return nil
				}
			}

			if err := tx.Bucket(bucketEntries).Put(key, data); err != nil {
				return err
			}
			return tx.Bucket(bucketIndex).Put(key, expiry)
		})
		if lastErr == nil {
			return nil
		}
	}

	return zerr.Wrap(lastErr, domain.ErrLockTimeout.Error())
}

// Touch increments the persisted hit counter of a live entry inside one
// update transaction. The index expiry stays untouched.
func (t *GlobalTier) Touch(fingerprint string, _ time.Time) error {
	return t.db.Update(func(tx *bbolt.Tx) error {
		key := []byte(fingerprint)
		data := tx.Bucket(bucketEntries).Get(key)
		if data == nil {
			return domain.ErrCacheMiss
		}

		var entry domain.CacheEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return domain.ErrCacheCorrupt
		}
		entry.HitCount++

		out, err := json.Marshal(&entry)
		if err != nil {
			return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
		}
		return tx.Bucket(bucketEntries).Put(key, out)
	})
}

// Sweep removes entries past their TTL and returns the number removed.
func (t *GlobalTier) Sweep(now time.Time) (int, error) {
	removed := 0
	err := t.db.Update(func(tx *bbolt.Tx) error {
		idx := tx.Bucket(bucketIndex)
		entries := tx.Bucket(bucketEntries)

		var stale [][]byte
		cursor := idx.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			if len(v) != 8 {
				stale = append(stale, append([]byte(nil), k...))
				continue
			}
			expiry := time.Unix(0, int64(binary.BigEndian.Uint64(v))) //nolint:gosec // Stored by us
			if !now.Before(expiry) {
				stale = append(stale, append([]byte(nil), k...))
			}
		}

		for _, k := range stale {
			if err := idx.Delete(k); err != nil {
				return err
			}
			if err := entries.Delete(k); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return 0, zerr.Wrap(err, "failed to sweep global cache")
	}
	return removed, nil
}

// Len returns the number of indexed entries.
func (t *GlobalTier) Len() (int, error) {
	count := 0
	err := t.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(bucketIndex).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Close closes the underlying database.
func (t *GlobalTier) Close() error {
	return t.db.Close()
}

// remove drops an entry outside the read transaction that found it stale.
func (t *GlobalTier) remove(fingerprint string) {
	_ = t.db.Update(func(tx *bbolt.Tx) error {
		key := []byte(fingerprint)
		if err := tx.Bucket(bucketIndex).Delete(key); err != nil {
			return err
		}
		return tx.Bucket(bucketEntries).Delete(key)
	})
}
