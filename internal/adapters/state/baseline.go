// Package state persists the engine's durable state files: the baseline
// snapshot, the coverage map, and the build duration history. Every file
// carries a schema version; a mismatch invalidates the file wholesale.
package state

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/delta/internal/core/domain"
	"go.trai.ch/delta/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BaselineStore = (*BaselineStore)(nil)

// BaselineStore implements ports.BaselineStore on a single JSON file under
// the project's .delta directory.
type BaselineStore struct {
	logger ports.Logger
}

// NewBaselineStore creates a new baseline store.
func NewBaselineStore(logger ports.Logger) *BaselineStore {
	return &BaselineStore{logger: logger}
}

// Load retrieves the baseline for the given root. A missing file or a file
// with a stale schema version yields nil, nil.
func (s *BaselineStore) Load(root string) (*domain.Baseline, error) {
	path := filepath.Join(root, domain.DefaultBaselinePath())
	//nolint:gosec // Path is constructed from the trusted project root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var b domain.Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}

	if b.SchemaVersion != domain.SchemaVersion {
		s.logger.Warn("baseline schema version mismatch, treating as absent")
		return nil, nil
	}

	return &b, nil
}

// Save atomically replaces the baseline for the given root.
func (s *BaselineStore) Save(root string, b *domain.Baseline) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}
	return writeAtomic(filepath.Join(root, domain.DefaultBaselinePath()), data)
}
