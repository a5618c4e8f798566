package shell_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/delta/internal/adapters/shell"
	"go.trai.ch/delta/internal/core/domain"
	"go.trai.ch/delta/internal/core/ports"
	"go.trai.ch/delta/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()
	return mockLogger
}

func graphOf(t *testing.T, units ...domain.Unit) *domain.UnitGraph {
	t.Helper()
	g := domain.NewUnitGraph()
	for _, u := range units {
		require.NoError(t, g.AddUnit(u))
	}
	require.NoError(t, g.Validate())
	return g
}

func TestExecutor_Execute(t *testing.T) {
	root := t.TempDir()
	g := graphOf(t,
		domain.Unit{Name: domain.NewInternedString("touch"), BuildCmd: []string{"sh", "-c", "echo built > out.txt"}},
		domain.Unit{Name: domain.NewInternedString("group")},
	)
	project := &domain.Project{Root: root, Graph: g}

	e := shell.NewExecutor(quietLogger(t))
	results, err := e.Execute(context.Background(), project, []domain.InternedString{
		domain.NewInternedString("touch"),
		domain.NewInternedString("group"),
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].Success)
	assert.True(t, results[1].Success)

	// The command ran in the project root.
	data, err := os.ReadFile(filepath.Join(root, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "built\n", string(data))
}

func TestExecutor_Execute_FailureAborts(t *testing.T) {
	g := graphOf(t,
		domain.Unit{Name: domain.NewInternedString("bad"), BuildCmd: []string{"sh", "-c", "exit 3"}},
		domain.Unit{Name: domain.NewInternedString("never"), BuildCmd: []string{"sh", "-c", "true"}},
	)
	project := &domain.Project{Root: t.TempDir(), Graph: g}

	e := shell.NewExecutor(quietLogger(t))
	results, err := e.Execute(context.Background(), project, []domain.InternedString{
		domain.NewInternedString("bad"),
		domain.NewInternedString("never"),
	})
	require.Error(t, err)

	// Only the failed unit ran; its result is still reported.
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, "bad", results[0].Unit.String())
}

func TestExecutor_Execute_UnknownUnit(t *testing.T) {
	project := &domain.Project{Root: t.TempDir(), Graph: graphOf(t)}

	e := shell.NewExecutor(quietLogger(t))
	_, err := e.Execute(context.Background(), project, []domain.InternedString{
		domain.NewInternedString("ghost"),
	})
	require.ErrorIs(t, err, domain.ErrUnknownUnit)
}

func TestRunner_Run_Selection(t *testing.T) {
	root := t.TempDir()
	project := &domain.Project{
		Root: root,
		// Append each test id to a log file; ids arrive one per invocation.
		TestCommand:     []string{"sh", "-c", `echo "$0" >> ran.txt`},
		TestParallelism: 1,
	}

	r := shell.NewRunner(quietLogger(t))
	results, err := r.Run(context.Background(), project, ports.TestSelection{
		Tests: []string{"tests/test_a.py", "tests/test_b.py"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Passed)
	assert.True(t, results[1].Passed)

	data, err := os.ReadFile(filepath.Join(root, "ran.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "tests/test_a.py")
	assert.Contains(t, string(data), "tests/test_b.py")
}

func TestRunner_Run_FullSuite(t *testing.T) {
	project := &domain.Project{
		Root:        t.TempDir(),
		TestCommand: []string{"true"},
	}

	r := shell.NewRunner(quietLogger(t))
	results, err := r.Run(context.Background(), project, ports.TestSelection{FullSuite: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "full-suite", results[0].Test)
	assert.True(t, results[0].Passed)
}

func TestRunner_Run_Failure(t *testing.T) {
	project := &domain.Project{
		Root:        t.TempDir(),
		TestCommand: []string{"false"},
	}

	r := shell.NewRunner(quietLogger(t))
	results, err := r.Run(context.Background(), project, ports.TestSelection{Tests: []string{"t1"}})
	require.Error(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
}

func TestRunner_Run_NoTestCommand(t *testing.T) {
	r := shell.NewRunner(quietLogger(t))
	_, err := r.Run(context.Background(), &domain.Project{Root: t.TempDir()}, ports.TestSelection{Tests: []string{"t1"}})
	require.Error(t, err)
}
