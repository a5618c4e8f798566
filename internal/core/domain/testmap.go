package domain

import "sort"

// MergeOutcome distinguishes the result of a coverage merge so callers can
// assert on outcome instead of inferring it from side effects.
type MergeOutcome string

const (
	// MergeApplied indicates new associations were recorded.
	MergeApplied MergeOutcome = "applied"
	// MergeNoOp indicates every association was already present.
	MergeNoOp MergeOutcome = "no-op"
)

// TestMap is a bidirectional mapping between files and the tests that
// exercise them. It grows monotonically through observed coverage; existing
// associations are only removed by an explicit rebuild from scratch.
type TestMap struct {
	SchemaVersion int                 `json:"schema_version"`
	FileToTests   map[string][]string `json:"file_to_tests"`
	TestToFiles   map[string][]string `json:"test_to_files"`
}

// NewTestMap creates an empty TestMap stamped with the current schema
// version.
func NewTestMap() *TestMap {
	return &TestMap{
		SchemaVersion: SchemaVersion,
		FileToTests:   make(map[string][]string),
		TestToFiles:   make(map[string][]string),
	}
}

// TestsFor returns the tests known to exercise the given file, and whether
// the file has any coverage data at all.
func (tm *TestMap) TestsFor(path string) ([]string, bool) {
	tests, ok := tm.FileToTests[path]
	return tests, ok
}

// Merge records that the given test exercises the given files. The merge is
// monotonic: it only ever adds associations.
func (tm *TestMap) Merge(test string, files []string) MergeOutcome {
	outcome := MergeNoOp

	for _, f := range files {
		if insertSorted(&tm.TestToFiles, test, f) {
			outcome = MergeApplied
		}
		if insertSorted(&tm.FileToTests, f, test) {
			outcome = MergeApplied
		}
	}

	return outcome
}

// insertSorted adds value to m[key] keeping the slice sorted and free of
// duplicates. It reports whether the value was newly inserted.
func insertSorted(m *map[string][]string, key, value string) bool {
	existing := (*m)[key]
	idx := sort.SearchStrings(existing, value)
	if idx < len(existing) && existing[idx] == value {
		return false
	}
	existing = append(existing, "")
	copy(existing[idx+1:], existing[idx:])
	existing[idx] = value
	(*m)[key] = existing
	return true
}
