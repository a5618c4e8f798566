// Package cache implements the two-tier content-addressed cache store: a
// local file-per-entry tier scoped to one build context and a shared bbolt
// global tier.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/delta/internal/core/domain"
	"go.trai.ch/zerr"
)

// LocalTier stores one JSON file per fingerprint under the build context's
// cache directory.
type LocalTier struct {
	dir string
}

// NewLocalTier creates the local tier rooted at the given directory.
func NewLocalTier(dir string) (*LocalTier, error) {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, "failed to create local cache directory")
	}
	return &LocalTier{dir: filepath.Clean(dir)}, nil
}

// Get retrieves the entry for a fingerprint. Expired entries are misses.
// Corrupt or schema-mismatched files are removed and reported as
// domain.ErrCacheCorrupt so the caller can count them as misses.
func (t *LocalTier) Get(fingerprint string, now time.Time) (*domain.CacheEntry, error) {
	path := t.entryPath(fingerprint)
	//nolint:gosec // Path is derived from a hashed fingerprint under our dir
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrCacheMiss
		}
		// An entry that exists but cannot be read is as useless as one that
		// does not decode.
		_ = os.Remove(path)
		return nil, domain.ErrCacheCorrupt
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.SchemaVersion != domain.SchemaVersion {
		_ = os.Remove(path)
		return nil, domain.ErrCacheCorrupt
	}

	if entry.Expired(now) {
		_ = os.Remove(path)
		return nil, domain.ErrCacheMiss
	}

	return &entry, nil
}

// Put writes a new entry. A live entry for the same fingerprint is left
// untouched: first writer wins.
func (t *LocalTier) Put(entry *domain.CacheEntry, now time.Time) error {
	if existing, err := t.Get(entry.Fingerprint, now); err == nil && existing != nil {
		return nil
	}
	return t.write(entry)
}

// Touch increments the persisted hit counter of a live entry. The payload
// stays as written; only the metadata changes.
func (t *LocalTier) Touch(fingerprint string, now time.Time) error {
	entry, err := t.Get(fingerprint, now)
	if err != nil {
		return err
	}
	entry.HitCount++
	return t.write(entry)
}

// write publishes an entry with a temp write and rename so readers never
// observe a partial entry.
func (t *LocalTier) write(entry *domain.CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	path := t.entryPath(entry.Fingerprint)
	tmp, err := os.CreateTemp(t.dir, "entry-*.tmp")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

// Sweep removes entries past their TTL and returns the number removed.
func (t *LocalTier) Sweep(now time.Time) (int, error) {
	names, err := t.entryFiles()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, name := range names {
		path := filepath.Join(t.dir, name)
		//nolint:gosec // Entries live under our own cache directory
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var entry domain.CacheEntry
		if err := json.Unmarshal(data, &entry); err != nil || entry.SchemaVersion != domain.SchemaVersion || entry.Expired(now) {
			if os.Remove(path) == nil {
				removed++
			}
		}
	}
	return removed, nil
}

// Len returns the number of stored entries, expired or not.
func (t *LocalTier) Len() (int, error) {
	names, err := t.entryFiles()
	if err != nil {
		return 0, err
	}
	return len(names), nil
}

// Close is a no-op for the file tier.
func (t *LocalTier) Close() error {
	return nil
}

func (t *LocalTier) entryFiles() ([]string, error) {
	dirents, err := os.ReadDir(t.dir)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	var names []string
	for _, d := range dirents {
		if d.IsDir() || filepath.Ext(d.Name()) != ".json" {
			continue
		}
		names = append(names, d.Name())
	}
	return names, nil
}

func (t *LocalTier) entryPath(fingerprint string) string {
	sum := sha256.Sum256([]byte(fingerprint))
	return filepath.Join(t.dir, hex.EncodeToString(sum[:])+".json")
}
