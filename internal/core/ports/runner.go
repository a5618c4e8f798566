package ports

import (
	"context"

	"go.trai.ch/delta/internal/core/domain"
)

// TestSelection is the set of tests the engine asks the runner to execute.
type TestSelection struct {
	// Tests are the selected test identifiers, sorted.
	Tests []string
	// FullSuite forces the entire suite when a changed file has no recorded
	// coverage. When set, Tests is advisory only.
	FullSuite bool
}

// TestRunner is the external collaborator that runs tests with bounded
// parallelism and reports pass/fail plus timing per test.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type TestRunner interface {
	Run(ctx context.Context, project *domain.Project, selection TestSelection) ([]domain.TestResult, error)
}
