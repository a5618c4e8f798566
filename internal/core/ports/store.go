package ports

import "go.trai.ch/delta/internal/core/domain"

// BaselineStore persists the baseline snapshot. A stored baseline with a
// stale schema version is treated as absent, never partially parsed.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BaselineStore interface {
	// Load retrieves the baseline for the given root.
	// Returns nil, nil if none is recorded.
	Load(root string) (*domain.Baseline, error)

	// Save atomically replaces the baseline for the given root.
	Save(root string, baseline *domain.Baseline) error
}

// TestMapStore persists the coverage map alongside the baseline.
type TestMapStore interface {
	// Load retrieves the coverage map for the given root.
	// Returns nil, nil if none is recorded.
	Load(root string) (*domain.TestMap, error)

	// Save atomically replaces the coverage map for the given root.
	Save(root string, tm *domain.TestMap) error
}
