package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/delta/internal/core/domain"
)

func TestRequestKey_Fingerprint_Deterministic(t *testing.T) {
	key := domain.RequestKey{
		Task:    "build",
		Targets: []string{"app", "lib"},
		FileHashes: map[string]string{
			"src/a.py": "aaa",
			"src/b.py": "bbb",
		},
	}

	// Map iteration order must not leak into the fingerprint.
	for range 50 {
		assert.Equal(t, key.Fingerprint(), key.Fingerprint())
	}
}

func TestRequestKey_Fingerprint_Sensitivity(t *testing.T) {
	base := domain.RequestKey{
		Task:       "build",
		Targets:    []string{"app"},
		FileHashes: map[string]string{"src/a.py": "aaa"},
	}

	hashChanged := base
	hashChanged.FileHashes = map[string]string{"src/a.py": "bbb"}
	assert.NotEqual(t, base.Fingerprint(), hashChanged.Fingerprint())

	taskChanged := base
	taskChanged.Task = "test"
	assert.NotEqual(t, base.Fingerprint(), taskChanged.Fingerprint())

	targetsChanged := base
	targetsChanged.Targets = []string{"lib"}
	assert.NotEqual(t, base.Fingerprint(), targetsChanged.Fingerprint())

	fileAdded := base
	fileAdded.FileHashes = map[string]string{"src/a.py": "aaa", "src/b.py": "bbb"}
	assert.NotEqual(t, base.Fingerprint(), fileAdded.Fingerprint())
}

func TestChangeSet_Partition(t *testing.T) {
	cs := domain.NewChangeSet()
	assert.True(t, cs.IsEmpty())

	cs.Added.Add("new.py")
	cs.Modified.Add("changed.py")
	cs.Deleted.Add("gone.py")
	cs.Unchanged.Add("same.py")

	assert.False(t, cs.IsEmpty())

	// Changed covers content that exists now and differs from the baseline;
	// deletions carry no content to rebuild or test against.
	changed := cs.Changed()
	assert.True(t, changed.Has("new.py"))
	assert.True(t, changed.Has("changed.py"))
	assert.False(t, changed.Has("gone.py"))
	assert.False(t, changed.Has("same.py"))
	assert.Equal(t, []string{"changed.py", "new.py"}, changed.Sorted())
}

func TestTestMap_Merge(t *testing.T) {
	tm := domain.NewTestMap()

	assert.Equal(t, domain.MergeApplied, tm.Merge("t1", []string{"a.py", "b.py"}))
	assert.Equal(t, domain.MergeApplied, tm.Merge("t2", []string{"a.py"}))

	// Replaying the same coverage is a no-op.
	assert.Equal(t, domain.MergeNoOp, tm.Merge("t1", []string{"a.py", "b.py"}))

	tests, known := tm.TestsFor("a.py")
	assert.True(t, known)
	assert.Equal(t, []string{"t1", "t2"}, tests)

	tests, known = tm.TestsFor("b.py")
	assert.True(t, known)
	assert.Equal(t, []string{"t1"}, tests)

	_, known = tm.TestsFor("c.py")
	assert.False(t, known)
}

func TestProject_OwnerOf(t *testing.T) {
	p := &domain.Project{
		UnitOwners: map[string]domain.InternedString{
			"lib/**":   domain.NewInternedString("lib"),
			"app/**":   domain.NewInternedString("app"),
			"Makefile": domain.NewInternedString("root"),
		},
	}

	owner, ok := p.OwnerOf("lib/util.py")
	assert.True(t, ok)
	assert.Equal(t, "lib", owner.String())

	owner, ok = p.OwnerOf("Makefile")
	assert.True(t, ok)
	assert.Equal(t, "root", owner.String())

	_, ok = p.OwnerOf("docs/readme.md")
	assert.False(t, ok)
}

func TestProject_PatternFor_FirstMatchWins(t *testing.T) {
	p := &domain.Project{
		Tracked: []domain.TrackedPattern{
			{Pattern: "tests/**/*.py", Category: domain.CategoryTest},
			{Pattern: "**/*.py", Category: domain.CategorySource},
			{Pattern: "build.yaml", Category: domain.CategoryConfig, BuildConfig: true},
		},
	}

	tp, ok := p.PatternFor("tests/unit/test_a.py")
	assert.True(t, ok)
	assert.Equal(t, domain.CategoryTest, tp.Category)

	tp, ok = p.PatternFor("src/a.py")
	assert.True(t, ok)
	assert.Equal(t, domain.CategorySource, tp.Category)

	tp, ok = p.PatternFor("build.yaml")
	assert.True(t, ok)
	assert.True(t, tp.BuildConfig)

	_, ok = p.PatternFor("README.md")
	assert.False(t, ok)
}
