package state

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/delta/internal/core/domain"
	"go.trai.ch/delta/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildMetrics = (*MetricsStore)(nil)

// metricsFile is the persisted shape of the duration history.
type metricsFile struct {
	SchemaVersion int              `json:"schema_version"`
	DurationsMS   map[string]int64 `json:"durations_ms"`
}

// MetricsStore implements ports.BuildMetrics on a JSON file of per-unit
// build durations, persisted alongside the baseline. A missing or stale
// file degrades to an empty history so planning falls back to the flat
// per-unit estimate.
type MetricsStore struct {
	logger ports.Logger
	// mu serializes the read-modify-write in Record within this process.
	mu sync.Mutex
}

// NewMetricsStore creates a new metrics store.
func NewMetricsStore(logger ports.Logger) *MetricsStore {
	return &MetricsStore{logger: logger}
}

// History returns the recorded build duration per unit for the given root.
func (s *MetricsStore) History(root string) (map[string]time.Duration, error) {
	mf, err := s.read(root)
	if err != nil {
		return nil, err
	}

	out := make(map[string]time.Duration, len(mf.DurationsMS))
	for unit, ms := range mf.DurationsMS {
		out[unit] = time.Duration(ms) * time.Millisecond
	}
	return out, nil
}

// Record folds observed unit durations into the history and persists it
// atomically.
func (s *MetricsStore) Record(root string, results []domain.UnitResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mf, err := s.read(root)
	if err != nil {
		return err
	}

	for _, r := range results {
		if !r.Success {
			// Failed builds do not produce representative durations.
			continue
		}
		mf.DurationsMS[r.Unit.String()] = r.Duration.Milliseconds()
	}

	data, err := json.MarshalIndent(mf, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}
	return writeAtomic(filepath.Join(root, domain.DefaultMetricsPath()), data)
}

func (s *MetricsStore) read(root string) (*metricsFile, error) {
	empty := &metricsFile{
		SchemaVersion: domain.SchemaVersion,
		DurationsMS:   make(map[string]int64),
	}

	path := filepath.Join(root, domain.DefaultMetricsPath())
	//nolint:gosec // Path is constructed from the trusted project root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return empty, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var mf metricsFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}
	if mf.SchemaVersion != domain.SchemaVersion {
		s.logger.Warn("metrics schema version mismatch, starting empty")
		return empty, nil
	}
	if mf.DurationsMS == nil {
		mf.DurationsMS = make(map[string]int64)
	}
	return &mf, nil
}
