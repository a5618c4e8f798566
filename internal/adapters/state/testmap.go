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

var _ ports.TestMapStore = (*TestMapStore)(nil)

// TestMapStore implements ports.TestMapStore on a JSON file persisted
// alongside the baseline.
type TestMapStore struct {
	logger ports.Logger
}

// NewTestMapStore creates a new coverage map store.
func NewTestMapStore(logger ports.Logger) *TestMapStore {
	return &TestMapStore{logger: logger}
}

// Load retrieves the coverage map for the given root. A missing file or a
// stale schema version yields nil, nil.
func (s *TestMapStore) Load(root string) (*domain.TestMap, error) {
	path := filepath.Join(root, domain.DefaultTestMapPath())
	//nolint:gosec // Path is constructed from the trusted project root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var tm domain.TestMap
	if err := json.Unmarshal(data, &tm); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}

	if tm.SchemaVersion != domain.SchemaVersion {
		s.logger.Warn("testmap schema version mismatch, treating as absent")
		return nil, nil
	}

	if tm.FileToTests == nil {
		tm.FileToTests = make(map[string][]string)
	}
	if tm.TestToFiles == nil {
		tm.TestToFiles = make(map[string][]string)
	}

	return &tm, nil
}

// Save atomically replaces the coverage map for the given root.
func (s *TestMapStore) Save(root string, tm *domain.TestMap) error {
	data, err := json.MarshalIndent(tm, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}
	return writeAtomic(filepath.Join(root, domain.DefaultTestMapPath()), data)
}
