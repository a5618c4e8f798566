package domain

import "go.trai.ch/zerr"

var (
	// ErrCacheMiss is returned when a fingerprint is not present in any
	// cache tier. It is normal control flow, not a failure.
	ErrCacheMiss = zerr.New("cache miss")

	// ErrCacheCorrupt is returned when a cache entry cannot be decoded. The
	// store treats it as a miss and purges the entry.
	ErrCacheCorrupt = zerr.New("cache entry corrupt")

	// ErrLockTimeout is returned when a serialized cache write could not
	// acquire the tier within the retry budget.
	ErrLockTimeout = zerr.New("cache write lock timeout")

	// ErrSchemaMismatch is returned when a persisted file carries an
	// unexpected schema version. The file is treated as absent.
	ErrSchemaMismatch = zerr.New("schema version mismatch")

	// ErrHashCompute is returned when a file's content digest cannot be
	// computed. Detection treats the file as conservatively modified.
	ErrHashCompute = zerr.New("failed to compute content hash")

	// ErrCycleDetected is returned when the dependency graph contains a
	// cycle. Planning aborts; cycles are never auto-broken.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrUnknownUnit is returned when an operation references a unit that is
	// not in the dependency graph.
	ErrUnknownUnit = zerr.New("unknown unit")

	// ErrUnitAlreadyExists is returned when adding a unit whose name is
	// already in the graph.
	ErrUnitAlreadyExists = zerr.New("unit already exists")

	// ErrMissingDependency is returned when a unit depends on a unit that is
	// not declared in the manifest.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrDelegateFailure is returned when the build executor or test runner
	// reports failure. The engine withholds baseline and cache updates.
	ErrDelegateFailure = zerr.New("delegate execution failed")

	// ErrDelegateTimeout is returned when a delegated stage exceeds its
	// configured timeout. Treated as full failure, never partial success.
	ErrDelegateTimeout = zerr.New("delegate execution timed out")

	// ErrConfigNotFound is returned when no delta.yaml can be located.
	ErrConfigNotFound = zerr.New("could not find delta.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidUnitName is returned when a unit name contains invalid
	// characters.
	ErrInvalidUnitName = zerr.New("invalid unit name")

	// ErrStoreReadFailed is returned when a persisted store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read store")

	// ErrStoreWriteFailed is returned when a persisted store cannot be
	// written.
	ErrStoreWriteFailed = zerr.New("failed to write store")

	// ErrStoreMarshalFailed is returned when store data cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal store data")

	// ErrStoreUnmarshalFailed is returned when store data cannot be
	// unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal store data")

	// ErrRunFailed is returned by the engine when an incremental run fails.
	ErrRunFailed = zerr.New("incremental run failed")
)
