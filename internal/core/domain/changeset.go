package domain

import "sort"

// PathSet is a set of file paths.
type PathSet map[string]struct{}

// NewPathSet creates a PathSet from the given paths.
func NewPathSet(paths ...string) PathSet {
	s := make(PathSet, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

// Add inserts a path into the set.
func (s PathSet) Add(path string) {
	s[path] = struct{}{}
}

// Has reports whether the set contains the path.
func (s PathSet) Has(path string) bool {
	_, ok := s[path]
	return ok
}

// Sorted returns the paths in lexical order.
func (s PathSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// ChangeSet partitions the union of current and baseline paths into four
// disjoint sets relative to a baseline.
type ChangeSet struct {
	Added     PathSet
	Modified  PathSet
	Deleted   PathSet
	Unchanged PathSet
}

// NewChangeSet creates an empty ChangeSet.
func NewChangeSet() *ChangeSet {
	return &ChangeSet{
		Added:     make(PathSet),
		Modified:  make(PathSet),
		Deleted:   make(PathSet),
		Unchanged: make(PathSet),
	}
}

// Changed returns the union of added and modified paths, the set of files
// whose content differs from the baseline.
func (cs *ChangeSet) Changed() PathSet {
	out := make(PathSet, len(cs.Added)+len(cs.Modified))
	for p := range cs.Added {
		out[p] = struct{}{}
	}
	for p := range cs.Modified {
		out[p] = struct{}{}
	}
	return out
}

// IsEmpty reports whether no file was added, modified, or deleted.
func (cs *ChangeSet) IsEmpty() bool {
	return len(cs.Added) == 0 && len(cs.Modified) == 0 && len(cs.Deleted) == 0
}
