package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/delta/internal/core/domain"
	"go.trai.ch/delta/internal/core/ports/mocks"
	"go.trai.ch/delta/internal/engine/selector"
	"go.uber.org/mock/gomock"
)

func TestSelector_Select_NoChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	s := selector.New(mockLogger)

	cs := domain.NewChangeSet()
	cs.Unchanged.Add("a.py")

	sel := s.Select(cs, nil, domain.NewTestMap(), []string{"t9"})
	assert.Empty(t, sel.Tests)
	assert.False(t, sel.FullSuite)
}

func TestSelector_Select_CoveredChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	s := selector.New(mockLogger)

	tm := domain.NewTestMap()
	tm.Merge("t1", []string{"a.py"})
	tm.Merge("t2", []string{"a.py"})
	tm.Merge("t3", []string{"b.py"})

	cs := domain.NewChangeSet()
	cs.Modified.Add("a.py")

	files := map[string]domain.TrackedFile{
		"a.py": {Path: "a.py", Category: domain.CategorySource},
	}

	sel := s.Select(cs, files, tm, []string{"t9"})
	assert.Equal(t, []string{"t1", "t2", "t9"}, sel.Tests)
	assert.False(t, sel.FullSuite)
}

func TestSelector_Select_UnknownCoverage(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any())

	s := selector.New(mockLogger)

	cs := domain.NewChangeSet()
	cs.Added.Add("fresh.py")

	files := map[string]domain.TrackedFile{
		"fresh.py": {Path: "fresh.py", Category: domain.CategorySource},
	}

	sel := s.Select(cs, files, domain.NewTestMap(), nil)
	assert.True(t, sel.FullSuite)
}

func TestSelector_Select_ChangedTestSelectsItself(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	s := selector.New(mockLogger)

	cs := domain.NewChangeSet()
	cs.Modified.Add("tests/test_a.py")

	files := map[string]domain.TrackedFile{
		"tests/test_a.py": {Path: "tests/test_a.py", Category: domain.CategoryTest},
	}

	sel := s.Select(cs, files, domain.NewTestMap(), nil)
	assert.Equal(t, []string{"tests/test_a.py"}, sel.Tests)
	assert.False(t, sel.FullSuite)
}

func TestSelector_Select_DeletionsDoNotSelect(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	s := selector.New(mockLogger)

	tm := domain.NewTestMap()
	tm.Merge("t1", []string{"gone.py"})

	// Only deletions: nothing runs, prior results remain valid.
	cs := domain.NewChangeSet()
	cs.Deleted.Add("gone.py")

	sel := s.Select(cs, nil, tm, nil)
	assert.Empty(t, sel.Tests)
	assert.False(t, sel.FullSuite)
}
