// Package selector reduces a change set to the minimal safe set of tests.
package selector

import (
	"sort"

	"go.trai.ch/delta/internal/core/domain"
	"go.trai.ch/delta/internal/core/ports"
)

// Selector computes test selections from change sets and the coverage map.
type Selector struct {
	logger ports.Logger
}

// New creates a new Selector.
func New(logger ports.Logger) *Selector {
	return &Selector{logger: logger}
}

// Select returns the tests to run for the change set:
//   - nothing when no file was added or modified (prior results stay valid),
//   - changed files that are themselves tests,
//   - every test covering a changed non-test file,
//   - the always-run critical set,
//   - the full suite when a changed file has no recorded coverage, so
//     unknown coverage is never silently skipped.
func (s *Selector) Select(
	cs *domain.ChangeSet,
	files map[string]domain.TrackedFile,
	tm *domain.TestMap,
	critical []string,
) ports.TestSelection {
	if len(cs.Added) == 0 && len(cs.Modified) == 0 {
		return ports.TestSelection{}
	}

	selected := make(map[string]struct{})
	fullSuite := false

	for path := range cs.Changed() {
		if f, ok := files[path]; ok && f.Category == domain.CategoryTest {
			selected[path] = struct{}{}
			continue
		}

		tests, known := tm.TestsFor(path)
		if !known {
			s.logger.Warn("no coverage recorded for " + path + ", selecting the full suite")
			fullSuite = true
			continue
		}
		for _, t := range tests {
			selected[t] = struct{}{}
		}
	}

	for _, t := range critical {
		selected[t] = struct{}{}
	}

	tests := make([]string, 0, len(selected))
	for t := range selected {
		tests = append(tests, t)
	}
	sort.Strings(tests)

	return ports.TestSelection{Tests: tests, FullSuite: fullSuite}
}
