package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/delta/cmd/delta/commands"
	"go.trai.ch/delta/internal/app"
	"go.trai.ch/delta/internal/core/domain"
)

type mockApp struct {
	runFunc   func(ctx context.Context, targets []string, opts app.RunOptions) (*domain.Outcome, error)
	statsFunc func(ctx context.Context) (domain.CacheStats, error)
	gcFunc    func(ctx context.Context) (int, error)
}

func (m *mockApp) Run(ctx context.Context, targets []string, opts app.RunOptions) (*domain.Outcome, error) {
	if m.runFunc != nil {
		return m.runFunc(ctx, targets, opts)
	}
	return &domain.Outcome{}, nil
}

func (m *mockApp) Stats(ctx context.Context) (domain.CacheStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx)
	}
	return domain.CacheStats{}, nil
}

func (m *mockApp) GC(ctx context.Context) (int, error) {
	if m.gcFunc != nil {
		return m.gcFunc(ctx)
	}
	return 0, nil
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.RunOptions
		var capturedTargets []string
		called := false

		mock := &mockApp{
			runFunc: func(_ context.Context, targets []string, opts app.RunOptions) (*domain.Outcome, error) {
				capturedOpts = opts
				capturedTargets = targets
				called = true
				return &domain.Outcome{}, nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "app", "--no-cache"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.True(t, capturedOpts.NoCache)
		assert.Equal(t, []string{"app"}, capturedTargets)
	})

	t.Run("prints the outcome summary", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) (*domain.Outcome, error) {
				return &domain.Outcome{
					Rebuilt:   []string{"A", "B"},
					Preserved: []string{"C"},
					UnitResults: []domain.UnitResult{
						{Unit: domain.NewInternedString("A"), Success: true, Duration: time.Second},
					},
				}, nil
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetArgs([]string{"run"})
		cli.SetOutput(buf, buf)

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, buf.String(), "rebuilt 2 unit(s), preserved 1")
		assert.Contains(t, buf.String(), "A, B")
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) (*domain.Outcome, error) {
				return nil, errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Stats(t *testing.T) {
	mock := &mockApp{
		statsFunc: func(_ context.Context) (domain.CacheStats, error) {
			return domain.CacheStats{
				Hits:   8,
				Misses: 3,
				Local:  domain.TierStats{Hits: 5, Misses: 6, Entries: 4},
				Global: domain.TierStats{Hits: 3, Misses: 3, Entries: 9},
			}, nil
		},
	}

	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetArgs([]string{"stats"})
	cli.SetOutput(buf, buf)

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "total: 8 hits, 3 misses")
	assert.Contains(t, buf.String(), "local")
	assert.Contains(t, buf.String(), "global")
}

func TestCommands_StatsHelpScopesCounters(t *testing.T) {
	cli := commands.New(&mockApp{})
	buf := new(bytes.Buffer)
	cli.SetArgs([]string{"stats", "--help"})
	cli.SetOutput(buf, buf)

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "this invocation")
}

func TestCommands_GC(t *testing.T) {
	mock := &mockApp{
		gcFunc: func(_ context.Context) (int, error) {
			return 12, nil
		},
	}

	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetArgs([]string{"gc"})
	cli.SetOutput(buf, buf)

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "removed 12 expired cache entries")
}
