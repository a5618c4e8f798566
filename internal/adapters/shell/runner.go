package shell

import (
	"context"
	"runtime"
	"sync"
	"time"

	"go.trai.ch/delta/internal/core/domain"
	"go.trai.ch/delta/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.TestRunner = (*Runner)(nil)

// Runner implements ports.TestRunner using os/exec. Tests run through a
// bounded worker pool; the cap comes from the project configuration.
// It reports pass/fail and timing only; it does not observe per-file
// coverage, so results carry no CoveredFiles and the coverage map grows
// only through runners that do.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new shell test runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes the selection by invoking the project's test command once
// per test identifier. A full-suite selection invokes the command with no
// identifier so the underlying harness discovers everything.
func (r *Runner) Run(ctx context.Context, project *domain.Project, selection ports.TestSelection) ([]domain.TestResult, error) {
	if len(project.TestCommand) == 0 {
		return nil, zerr.New("no test command configured")
	}

	if selection.FullSuite {
		r.logger.Warn("changed files with unknown coverage, running the full suite")
		start := time.Now()
		err := r.runOne(ctx, project, nil)
		return []domain.TestResult{{
			Test:     "full-suite",
			Passed:   err == nil,
			Duration: time.Since(start),
		}}, failureOf(err)
	}

	parallelism := project.TestParallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	results := make([]domain.TestResult, len(selection.Tests))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, test := range selection.Tests {
		g.Go(func() error {
			start := time.Now()
			err := r.runOne(gctx, project, []string{test})

			mu.Lock()
			results[i] = domain.TestResult{
				Test:     test,
				Passed:   err == nil,
				Duration: time.Since(start),
			}
			mu.Unlock()
			return err
		})
	}

	err := g.Wait()
	return results, failureOf(err)
}

func (r *Runner) runOne(ctx context.Context, project *domain.Project, extraArgs []string) error {
	command := append(append([]string{}, project.TestCommand...), extraArgs...)

	e := &Executor{logger: r.logger}
	return e.runCommand(ctx, project.Root, command)
}

func failureOf(err error) error {
	if err == nil {
		return nil
	}
	return zerr.Wrap(err, "test execution failed")
}
