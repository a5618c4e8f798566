// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/delta/internal/core/domain"
)

// BuildExecutor is the external collaborator that rebuilds units. The engine
// hands it the rebuild partition and never executes build commands itself.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type BuildExecutor interface {
	// Execute rebuilds the given units and reports per-unit success and
	// duration. It must honor ctx cancellation and deadline.
	Execute(ctx context.Context, project *domain.Project, units []domain.InternedString) ([]domain.UnitResult, error)
}
