package domain

import (
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// TrackedPattern selects files into the tracked set. Patterns use
// doublestar syntax relative to the project root. The first pattern
// matching a path decides its category.
type TrackedPattern struct {
	Pattern  string
	Category FileCategory
	// BuildConfig marks files whose change invalidates every unit. The
	// engine escalates to a full rebuild when one changes.
	BuildConfig bool
}

// Project is the loaded configuration of one build context: the tracked
// file set, the dependency graph, and the engine policy knobs.
type Project struct {
	// Root is the absolute path of the project root directory.
	Root string
	// Graph is the validated unit dependency graph from the manifest.
	Graph *UnitGraph
	// Tracked selects the tracked file set.
	Tracked []TrackedPattern
	// Ignore lists doublestar patterns excluded from the tracked set.
	Ignore []string
	// UnitOwners maps path patterns to the unit owning them, used to map
	// changed files onto graph units.
	UnitOwners map[string]InternedString
	// Task is the logical task descriptor fingerprinted with each request.
	Task string
	// CriticalTests is the always-run integration set.
	CriticalTests []string
	// TestCommand is the command prefix the test runner invokes; selected
	// test identifiers are appended as arguments.
	TestCommand []string
	// CacheTTL is the time-to-live applied to new cache entries.
	CacheTTL time.Duration
	// GlobalCachePath locates the shared cache tier. May point outside the
	// project root when the tier is shared between checkouts.
	GlobalCachePath string
	// DelegateTimeout bounds each delegation to the executor or runner.
	DelegateTimeout time.Duration
	// TestParallelism caps the runner's worker pool. Zero means the
	// runner's default.
	TestParallelism int
}

// PatternFor returns the first tracked pattern matching the given path.
// Pattern order decides the category of a path matching several patterns.
func (p *Project) PatternFor(path string) (TrackedPattern, bool) {
	for _, tp := range p.Tracked {
		if matched, err := doublestar.Match(tp.Pattern, path); err == nil && matched {
			return tp, true
		}
	}
	return TrackedPattern{}, false
}

// OwnerOf maps a changed path to the unit owning it via the ownership
// patterns. Patterns are tried in lexical order so a path matching several
// resolves deterministically. A path owned by no unit affects nothing
// beyond itself.
func (p *Project) OwnerOf(path string) (InternedString, bool) {
	patterns := make([]string, 0, len(p.UnitOwners))
	for pattern := range p.UnitOwners {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)

	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return p.UnitOwners[pattern], true
		}
	}
	return InternedString{}, false
}
