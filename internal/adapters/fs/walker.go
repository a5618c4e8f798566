package fs

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/delta/internal/core/domain"
	"go.trai.ch/delta/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileResolver = (*Walker)(nil)

// Walker resolves the project's tracked patterns into the concrete tracked
// file set.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// Resolve walks the project root and returns every file matching a tracked
// pattern and no ignore pattern, in lexical path order. Paths are relative
// to the root.
func (w *Walker) Resolve(project *domain.Project) ([]domain.TrackedFile, error) {
	var out []domain.TrackedFile

	err := filepath.WalkDir(project.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(project.Root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			// Never descend into delta's own metadata directory.
			if d.Name() == domain.DeltaDirName {
				return filepath.SkipDir
			}
			if w.ignored(project, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if w.ignored(project, rel) {
			return nil
		}

		pattern, ok := project.PatternFor(rel)
		if !ok {
			return nil
		}

		out = append(out, domain.TrackedFile{
			Path:        rel,
			Category:    pattern.Category,
			BuildConfig: pattern.BuildConfig,
		})
		return nil
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to walk project root"), "root", project.Root)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (w *Walker) ignored(project *domain.Project, rel string) bool {
	for _, pattern := range project.Ignore {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}
