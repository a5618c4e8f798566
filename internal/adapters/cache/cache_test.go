package cache_test

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/delta/internal/adapters/cache"
	"go.trai.ch/delta/internal/core/domain"
	"go.trai.ch/delta/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newTiered(t *testing.T) *cache.Tiered {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	local, err := cache.NewLocalTier(filepath.Join(t.TempDir(), "local"))
	require.NoError(t, err)
	global, err := cache.NewGlobalTier(filepath.Join(t.TempDir(), "global", "cache.db"))
	require.NoError(t, err)

	tiered := cache.NewTiered(local, global, mockLogger)
	t.Cleanup(func() {
		require.NoError(t, tiered.Close())
	})
	return tiered
}

func TestTiered_RoundTrip(t *testing.T) {
	tiered := newTiered(t)

	payload := []byte(`{"rebuilt":["A"]}`)
	require.NoError(t, tiered.Store("fp-1", payload, time.Hour, domain.TierLocal))

	entry, err := tiered.Lookup("fp-1")
	require.NoError(t, err)
	assert.Equal(t, "fp-1", entry.Fingerprint)
	assert.Equal(t, json.RawMessage(payload), entry.Payload)
	assert.Equal(t, domain.TierLocal, entry.Tier)
}

func TestTiered_Miss(t *testing.T) {
	tiered := newTiered(t)

	_, err := tiered.Lookup("absent")
	require.ErrorIs(t, err, domain.ErrCacheMiss)

	stats := tiered.Stats()
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Local.Misses)
	assert.Equal(t, int64(1), stats.Global.Misses)
}

func TestTiered_GlobalHitPromotesToLocal(t *testing.T) {
	tiered := newTiered(t)

	require.NoError(t, tiered.Store("fp-g", []byte(`{}`), time.Hour, domain.TierGlobal))

	// First lookup misses local, hits global, and promotes.
	entry, err := tiered.Lookup("fp-g")
	require.NoError(t, err)
	assert.Equal(t, domain.TierGlobal, entry.Tier)

	stats := tiered.Stats()
	assert.Equal(t, int64(1), stats.Global.Hits)
	assert.Equal(t, int64(1), stats.Local.Misses)
	assert.Equal(t, 1, stats.Local.Entries)

	// Second lookup resolves from the local copy.
	entry, err = tiered.Lookup("fp-g")
	require.NoError(t, err)
	assert.Equal(t, domain.TierLocal, entry.Tier)

	stats = tiered.Stats()
	assert.Equal(t, int64(1), stats.Local.Hits)
	assert.Equal(t, int64(1), stats.Global.Hits)
}

func TestTiered_TTLExpiry(t *testing.T) {
	now := time.Now()
	tiered := newTiered(t).WithClock(func() time.Time { return now })

	require.NoError(t, tiered.Store("fp-ttl", []byte(`{}`), time.Minute, domain.TierLocal))
	require.NoError(t, tiered.Store("fp-ttl", []byte(`{}`), time.Minute, domain.TierGlobal))

	_, err := tiered.Lookup("fp-ttl")
	require.NoError(t, err)

	// Advance past the TTL: the entry is gone from both tiers.
	now = now.Add(2 * time.Minute)
	_, err = tiered.Lookup("fp-ttl")
	require.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestTiered_HitCountPersists(t *testing.T) {
	tiered := newTiered(t)

	require.NoError(t, tiered.Store("fp-h", []byte(`{}`), time.Hour, domain.TierLocal))

	entry, err := tiered.Lookup("fp-h")
	require.NoError(t, err)
	assert.Equal(t, int64(1), entry.HitCount)

	// The counter survives the lookup that incremented it.
	entry, err = tiered.Lookup("fp-h")
	require.NoError(t, err)
	assert.Equal(t, int64(2), entry.HitCount)
}

func TestTiered_UnreadableLocalEntryIsAMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	dir := filepath.Join(t.TempDir(), "local")
	local, err := cache.NewLocalTier(dir)
	require.NoError(t, err)
	global, err := cache.NewGlobalTier(filepath.Join(t.TempDir(), "global", "cache.db"))
	require.NoError(t, err)

	tiered := cache.NewTiered(local, global, mockLogger)
	t.Cleanup(func() {
		require.NoError(t, tiered.Close())
	})

	// A directory at the entry path makes the read fail without the file
	// being absent.
	sum := sha256.Sum256([]byte("fp-dir"))
	entryPath := filepath.Join(dir, hex.EncodeToString(sum[:])+".json")
	require.NoError(t, os.Mkdir(entryPath, 0o755))

	_, err = tiered.Lookup("fp-dir")
	require.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestTiered_FirstWriterWins(t *testing.T) {
	tiered := newTiered(t)

	require.NoError(t, tiered.Store("fp-w", []byte(`{"v":1}`), time.Hour, domain.TierLocal))
	require.NoError(t, tiered.Store("fp-w", []byte(`{"v":2}`), time.Hour, domain.TierLocal))

	entry, err := tiered.Lookup("fp-w")
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`{"v":1}`), entry.Payload)
}

func TestTiered_InvalidateExpired(t *testing.T) {
	now := time.Now()
	tiered := newTiered(t).WithClock(func() time.Time { return now })

	require.NoError(t, tiered.Store("short", []byte(`{}`), time.Minute, domain.TierLocal))
	require.NoError(t, tiered.Store("short", []byte(`{}`), time.Minute, domain.TierGlobal))
	require.NoError(t, tiered.Store("long", []byte(`{}`), time.Hour, domain.TierLocal))

	now = now.Add(10 * time.Minute)
	removed, err := tiered.InvalidateExpired()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = tiered.Lookup("long")
	assert.NoError(t, err)
}

func TestLocalTier_CorruptEntryIsPurged(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "local")
	local, err := cache.NewLocalTier(dir)
	require.NoError(t, err)

	now := time.Now()
	entry := &domain.CacheEntry{
		SchemaVersion: domain.SchemaVersion,
		Fingerprint:   "fp-c",
		Tier:          domain.TierLocal,
		Payload:       []byte(`{}`),
		CreatedAt:     now,
		TTLSeconds:    3600,
	}
	require.NoError(t, local.Put(entry, now))

	// Truncate every stored file to simulate corruption.
	dirents, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, d := range dirents {
		require.NoError(t, os.WriteFile(filepath.Join(dir, d.Name()), []byte("not json"), 0o644))
	}

	_, err = local.Get("fp-c", now)
	require.ErrorIs(t, err, domain.ErrCacheCorrupt)

	// The purge leaves a clean miss behind.
	_, err = local.Get("fp-c", now)
	require.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestLocalTier_SchemaMismatchIsCorrupt(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "local")
	local, err := cache.NewLocalTier(dir)
	require.NoError(t, err)

	now := time.Now()
	entry := &domain.CacheEntry{
		SchemaVersion: domain.SchemaVersion + 1,
		Fingerprint:   "fp-s",
		Payload:       []byte(`{}`),
		CreatedAt:     now,
		TTLSeconds:    3600,
	}
	require.NoError(t, local.Put(entry, now))

	_, err = local.Get("fp-s", now)
	require.ErrorIs(t, err, domain.ErrCacheCorrupt)
}
