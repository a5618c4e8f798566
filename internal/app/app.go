// Package app implements the incremental build engine façade.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.trai.ch/delta/internal/core/domain"
	"go.trai.ch/delta/internal/core/ports"
	"go.trai.ch/delta/internal/engine/detector"
	"go.trai.ch/delta/internal/engine/planner"
	"go.trai.ch/delta/internal/engine/selector"
	"go.trai.ch/zerr"
)

// App sequences one incremental run: fingerprint, cache lookup, change
// detection, planning, delegation, and state commit.
type App struct {
	loader       ports.ConfigLoader
	resolver     ports.FileResolver
	baselines    ports.BaselineStore
	testmaps     ports.TestMapStore
	metrics      ports.BuildMetrics
	cacheFactory ports.CacheFactory
	executor     ports.BuildExecutor
	runner       ports.TestRunner
	logger       ports.Logger

	detector *detector.Detector
	planner  *planner.Planner
	selector *selector.Selector
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	hasher ports.ContentHasher,
	resolver ports.FileResolver,
	baselines ports.BaselineStore,
	testmaps ports.TestMapStore,
	metrics ports.BuildMetrics,
	cacheFactory ports.CacheFactory,
	executor ports.BuildExecutor,
	runner ports.TestRunner,
	logger ports.Logger,
) *App {
	return &App{
		loader:       loader,
		resolver:     resolver,
		baselines:    baselines,
		testmaps:     testmaps,
		metrics:      metrics,
		cacheFactory: cacheFactory,
		executor:     executor,
		runner:       runner,
		logger:       logger,
		detector:     detector.New(hasher, logger),
		planner:      planner.New(logger),
		selector:     selector.New(logger),
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// NoCache bypasses the outcome cache and forces detection and planning.
	NoCache bool
}

// Run executes one incremental build request for the given targets.
//
// A cache hit short-circuits before detection. On a miss the engine plans
// the rebuild, delegates execution, and commits the new baseline, cache
// entry, and coverage only after every delegated stage succeeded. A failed
// or cancelled run leaves all persisted state untouched so the next run
// re-detects from the last known-good baseline.
func (a *App) Run(ctx context.Context, targets []string, opts RunOptions) (*domain.Outcome, error) {
	project, err := a.loader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	files, err := a.resolver.Resolve(project)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve tracked files")
	}

	snap, err := a.detector.Snapshot(ctx, project.Root, files)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to snapshot tracked files")
	}

	key := domain.RequestKey{
		Task:       project.Task,
		Targets:    targets,
		FileHashes: snap.FileHashes(),
	}
	fingerprint := key.Fingerprint()

	cache, err := a.cacheFactory.Open(project)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open cache store")
	}
	defer func() {
		if err := cache.Close(); err != nil {
			a.logger.Error(err)
		}
	}()

	// A fingerprint computed without a digest for every tracked file does
	// not identify the request: an unreadable file hashes to nothing whether
	// its content is old or new. Never reuse or publish an outcome under it.
	if len(snap.Failed) > 0 {
		a.logger.Warn("unhashable tracked files present, bypassing the outcome cache")
	} else if !opts.NoCache {
		if outcome := a.lookupOutcome(cache, fingerprint); outcome != nil {
			a.logger.Info("cache hit for " + fingerprint + ", reusing prior outcome")
			return outcome, nil
		}
	}

	return a.runMiss(ctx, project, snap, cache, fingerprint)
}

// lookupOutcome decodes a cached outcome, treating any decode failure as a
// miss.
func (a *App) lookupOutcome(cache ports.CacheStore, fingerprint string) *domain.Outcome {
	entry, err := cache.Lookup(fingerprint)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			a.logger.Error(err)
		}
		return nil
	}

	var outcome domain.Outcome
	if err := json.Unmarshal(entry.Payload, &outcome); err != nil {
		return nil
	}
	outcome.FromCache = true
	return &outcome
}

//nolint:cyclop // Orchestration of the full miss path
func (a *App) runMiss(
	ctx context.Context,
	project *domain.Project,
	snap *detector.Snapshot,
	cache ports.CacheStore,
	fingerprint string,
) (*domain.Outcome, error) {
	baseline, err := a.baselines.Load(project.Root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load baseline")
	}

	cs := a.detector.Compare(baseline, snap)

	history, err := a.metrics.History(project.Root)
	if err != nil {
		a.logger.Warn("failed to load duration history, using flat estimates")
		history = nil
	}

	var plan *domain.BuildPlan
	if detector.BuildConfigChanged(cs, snap) {
		a.logger.Info("build-wide configuration changed, planning a full rebuild")
		plan = a.planner.FullRebuild(project, history)
	} else {
		plan, err = a.planner.Plan(cs, project, history)
		if err != nil {
			return nil, err
		}
	}

	a.logger.Info(fmt.Sprintf(
		"plan: %d units to rebuild, %d preserved, estimated %s",
		len(plan.Rebuild), len(plan.Preserve), plan.EstimatedCost,
	))

	unitResults, err := a.executeBuild(ctx, project, plan)
	if err != nil {
		return nil, err
	}

	testMap, err := a.testmaps.Load(project.Root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load coverage map")
	}
	if testMap == nil {
		testMap = domain.NewTestMap()
	}

	selection := a.selector.Select(cs, snap.Files, testMap, project.CriticalTests)

	testResults, err := a.runTests(ctx, project, selection)
	if err != nil {
		return nil, err
	}

	outcome := &domain.Outcome{
		Fingerprint: fingerprint,
		CreatedAt:   time.Now(),
		FullSuite:   selection.FullSuite,
		Rebuilt:     unitNames(plan.Rebuild),
		Preserved:   unitNames(plan.Preserve),
		UnitResults: unitResults,
		TestResults: testResults,
		Cost:        plan.EstimatedCost,
	}

	if err := a.commit(project, snap, cache, fingerprint, outcome, testMap, unitResults); err != nil {
		return nil, err
	}

	return outcome, nil
}

// executeBuild delegates the rebuild partition to the build executor under
// the configured timeout.
func (a *App) executeBuild(ctx context.Context, project *domain.Project, plan *domain.BuildPlan) ([]domain.UnitResult, error) {
	if len(plan.Rebuild) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, project.DelegateTimeout)
	defer cancel()

	results, err := a.executor.Execute(ctx, project, plan.Rebuild)
	if err != nil {
		return nil, delegateError(ctx, err, "build executor")
	}
	return results, nil
}

// runTests delegates the selection to the test runner under the configured
// timeout. An empty selection with no full-suite flag skips the runner
// entirely.
func (a *App) runTests(ctx context.Context, project *domain.Project, selection ports.TestSelection) ([]domain.TestResult, error) {
	if len(selection.Tests) == 0 && !selection.FullSuite {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, project.DelegateTimeout)
	defer cancel()

	results, err := a.runner.Run(ctx, project, selection)
	if err != nil {
		return nil, delegateError(ctx, err, "test runner")
	}
	return results, nil
}

// commit publishes the post-run state: new baseline, cache entries in both
// tiers, merged coverage, and duration history. It only runs after every
// delegated stage succeeded. Cache entries are withheld when any tracked
// file failed to hash, since the fingerprint is incomplete.
func (a *App) commit(
	project *domain.Project,
	snap *detector.Snapshot,
	cache ports.CacheStore,
	fingerprint string,
	outcome *domain.Outcome,
	testMap *domain.TestMap,
	unitResults []domain.UnitResult,
) error {
	newBaseline := a.detector.NewBaseline(snap, time.Now())
	if err := a.baselines.Save(project.Root, newBaseline); err != nil {
		return zerr.Wrap(err, "failed to save baseline")
	}

	if len(snap.Failed) == 0 {
		payload, err := json.Marshal(outcome)
		if err != nil {
			return zerr.Wrap(err, "failed to encode outcome")
		}
		for _, tier := range []domain.CacheTier{domain.TierLocal, domain.TierGlobal} {
			if err := cache.Store(fingerprint, payload, project.CacheTTL, tier); err != nil {
				// A failed cache write costs a future hit, not correctness.
				a.logger.Error(err)
			}
		}
	}

	merged := false
	for _, tr := range outcome.TestResults {
		if tr.Passed && len(tr.CoveredFiles) > 0 {
			if testMap.Merge(tr.Test, tr.CoveredFiles) == domain.MergeApplied {
				merged = true
			}
		}
	}
	if merged {
		if err := a.testmaps.Save(project.Root, testMap); err != nil {
			return zerr.Wrap(err, "failed to save coverage map")
		}
	}

	if len(unitResults) > 0 {
		if err := a.metrics.Record(project.Root, unitResults); err != nil {
			a.logger.Error(err)
		}
	}

	return nil
}

// Stats returns the cache statistics for the current project.
func (a *App) Stats(_ context.Context) (domain.CacheStats, error) {
	project, err := a.loader.Load(".")
	if err != nil {
		return domain.CacheStats{}, zerr.Wrap(err, "failed to load configuration")
	}

	cache, err := a.cacheFactory.Open(project)
	if err != nil {
		return domain.CacheStats{}, zerr.Wrap(err, "failed to open cache store")
	}
	defer func() {
		if err := cache.Close(); err != nil {
			a.logger.Error(err)
		}
	}()

	return cache.Stats(), nil
}

// GC sweeps expired entries from both cache tiers and returns the number
// removed.
func (a *App) GC(_ context.Context) (int, error) {
	project, err := a.loader.Load(".")
	if err != nil {
		return 0, zerr.Wrap(err, "failed to load configuration")
	}

	cache, err := a.cacheFactory.Open(project)
	if err != nil {
		return 0, zerr.Wrap(err, "failed to open cache store")
	}
	defer func() {
		if err := cache.Close(); err != nil {
			a.logger.Error(err)
		}
	}()

	return cache.InvalidateExpired()
}

// delegateError classifies a delegate failure, distinguishing timeouts
// from execution failures.
func delegateError(ctx context.Context, err error, stage string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Join(domain.ErrDelegateTimeout, zerr.With(err, "stage", stage))
	}
	return errors.Join(domain.ErrDelegateFailure, zerr.With(err, "stage", stage))
}

func unitNames(units []domain.InternedString) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.String()
	}
	return out
}
