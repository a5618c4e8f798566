package cache

import (
	"path/filepath"

	"go.trai.ch/delta/internal/core/domain"
	"go.trai.ch/delta/internal/core/ports"
)

var _ ports.CacheFactory = (*Factory)(nil)

// Factory opens tiered cache stores for loaded projects.
type Factory struct {
	logger ports.Logger
}

// NewFactory creates a new cache factory.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{logger: logger}
}

// Open builds the tiered store: the local tier lives under the project
// root, the global tier at the configured shared path (defaulting to the
// project's .delta directory).
func (f *Factory) Open(project *domain.Project) (ports.CacheStore, error) {
	local, err := NewLocalTier(filepath.Join(project.Root, domain.DefaultLocalCachePath()))
	if err != nil {
		return nil, err
	}

	globalPath := project.GlobalCachePath
	if globalPath == "" {
		globalPath = filepath.Join(project.Root, domain.DefaultGlobalCachePath())
	}
	global, err := NewGlobalTier(globalPath)
	if err != nil {
		_ = local.Close()
		return nil, err
	}

	return NewTiered(local, global, f.logger), nil
}
