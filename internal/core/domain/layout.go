package domain

import (
	"path/filepath"
	"time"
)

const (
	// DeltaDirName is the name of the internal workspace directory.
	DeltaDirName = ".delta"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// LocalCacheDirName is the name of the local cache tier directory.
	LocalCacheDirName = "local"

	// GlobalCacheFileName is the default file name of the global cache tier.
	GlobalCacheFileName = "global.db"

	// BaselineFileName is the name of the persisted baseline snapshot.
	BaselineFileName = "baseline.json"

	// TestMapFileName is the name of the persisted coverage map.
	TestMapFileName = "testmap.json"

	// MetricsFileName is the name of the persisted build duration history.
	MetricsFileName = "metrics.json"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "delta.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

const (
	// SchemaVersion is the current version of every persisted structure
	// (baseline, cache entries, test map, metrics history). A persisted file
	// carrying a different version is invalidated wholesale, never partially
	// parsed.
	SchemaVersion = 1

	// DefaultCacheTTL is the default time-to-live for cache entries.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultUnitEstimate is the flat per-unit build duration used when no
	// history exists for a unit.
	DefaultUnitEstimate = 30 * time.Second

	// DefaultDelegateTimeout bounds a single delegation to the build
	// executor or test runner.
	DefaultDelegateTimeout = 30 * time.Minute
)

// DefaultDeltaPath returns the default root directory for delta metadata.
func DefaultDeltaPath() string {
	return DeltaDirName
}

// DefaultLocalCachePath returns the default path for the local cache tier.
// It joins .delta, cache, and local.
func DefaultLocalCachePath() string {
	return filepath.Join(DeltaDirName, CacheDirName, LocalCacheDirName)
}

// DefaultGlobalCachePath returns the default path for the global cache tier.
// It joins .delta, cache, and global.db.
func DefaultGlobalCachePath() string {
	return filepath.Join(DeltaDirName, CacheDirName, GlobalCacheFileName)
}

// DefaultBaselinePath returns the default path for the baseline snapshot.
func DefaultBaselinePath() string {
	return filepath.Join(DeltaDirName, BaselineFileName)
}

// DefaultTestMapPath returns the default path for the coverage map.
func DefaultTestMapPath() string {
	return filepath.Join(DeltaDirName, TestMapFileName)
}

// DefaultMetricsPath returns the default path for the duration history.
func DefaultMetricsPath() string {
	return filepath.Join(DeltaDirName, MetricsFileName)
}
