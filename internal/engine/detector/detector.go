// Package detector implements file-level change detection against a stored
// baseline.
package detector

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"go.trai.ch/delta/internal/core/domain"
	"go.trai.ch/delta/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Snapshot holds the hashed state of the tracked file set at one instant.
type Snapshot struct {
	// Records maps path to its current file record. Files whose hash could
	// not be computed have no record.
	Records map[string]domain.FileRecord
	// Failed lists files whose hash could not be computed; detection treats
	// them as conservatively changed.
	Failed domain.PathSet
	// Files maps path to its tracked-file metadata.
	Files map[string]domain.TrackedFile
}

// FileHashes returns the path-to-digest map used for fingerprinting.
func (s *Snapshot) FileHashes() map[string]string {
	out := make(map[string]string, len(s.Records))
	for path, rec := range s.Records {
		out[path] = rec.Hash
	}
	return out
}

// Detector computes snapshots of the tracked set and change sets against a
// baseline.
type Detector struct {
	hasher ports.ContentHasher
	logger ports.Logger
}

// New creates a new Detector.
func New(hasher ports.ContentHasher, logger ports.Logger) *Detector {
	return &Detector{hasher: hasher, logger: logger}
}

// Snapshot hashes every tracked file with bounded parallelism. A per-file
// hash failure does not fail the pass; the file is recorded in Failed and
// the engine treats it as modified.
func (d *Detector) Snapshot(ctx context.Context, root string, files []domain.TrackedFile) (*Snapshot, error) {
	snap := &Snapshot{
		Records: make(map[string]domain.FileRecord, len(files)),
		Failed:  make(domain.PathSet),
		Files:   make(map[string]domain.TrackedFile, len(files)),
	}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, f := range files {
		snap.Files[f.Path] = f

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			abs := filepath.Join(root, f.Path)
			hash, err := d.hasher.HashFile(abs)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				d.logger.Warn("failed to hash " + f.Path + ", treating as modified")
				snap.Failed.Add(f.Path)
				return nil
			}

			var size int64
			if info, statErr := os.Stat(abs); statErr == nil {
				size = info.Size()
			}
			snap.Records[f.Path] = domain.FileRecord{
				Path:       f.Path,
				Hash:       hash,
				SizeBytes:  size,
				Category:   f.Category,
				ObservedAt: time.Now(),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Compare partitions the union of baseline and snapshot paths into the
// four change sets. A nil baseline marks every current file as added, the
// full-rebuild signal for a first run. Renames are not detected; a rename
// surfaces as one deleted plus one added path.
func (d *Detector) Compare(baseline *domain.Baseline, snap *Snapshot) *domain.ChangeSet {
	cs := domain.NewChangeSet()

	if baseline == nil {
		for path := range snap.Files {
			cs.Added.Add(path)
		}
		return cs
	}

	for path := range snap.Files {
		_, inBaseline := baseline.Files[path]

		if snap.Failed.Has(path) {
			// Unknown current content: assume the worst.
			if inBaseline {
				cs.Modified.Add(path)
			} else {
				cs.Added.Add(path)
			}
			continue
		}

		record := snap.Records[path]
		switch {
		case !inBaseline:
			cs.Added.Add(path)
		case baseline.Files[path].Hash != record.Hash:
			cs.Modified.Add(path)
		default:
			cs.Unchanged.Add(path)
		}
	}

	for path := range baseline.Files {
		if _, current := snap.Files[path]; !current {
			cs.Deleted.Add(path)
		}
	}

	return cs
}

// NewBaseline builds the baseline to persist after a successful run from
// the snapshot's records.
func (d *Detector) NewBaseline(snap *Snapshot, now time.Time) *domain.Baseline {
	b := domain.NewBaseline(now)
	for path, rec := range snap.Records {
		b.Files[path] = rec
	}
	return b
}

// BuildConfigChanged reports whether any changed path is flagged as
// build-wide configuration.
func BuildConfigChanged(cs *domain.ChangeSet, snap *Snapshot) bool {
	for path := range cs.Changed() {
		if f, ok := snap.Files[path]; ok && f.BuildConfig {
			return true
		}
	}
	return false
}
