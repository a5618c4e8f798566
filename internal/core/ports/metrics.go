package ports

import (
	"time"

	"go.trai.ch/delta/internal/core/domain"
)

// BuildMetrics supplies historical per-unit build durations used to price
// build plans. Absence of history degrades gracefully to a flat estimate.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type BuildMetrics interface {
	// History returns the recorded build duration per unit for the given
	// root. A missing or stale history file yields an empty map.
	History(root string) (map[string]time.Duration, error)

	// Record folds observed unit durations into the history.
	Record(root string, results []domain.UnitResult) error
}
