// Package config provides the configuration loader for delta.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"go.trai.ch/delta/internal/core/domain"
	"go.trai.ch/delta/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

var validUnitNameRegex = regexp.MustCompile("^[a-zA-Z0-9_/-]+$")

// Load searches upward from cwd for delta.yaml and returns the loaded
// project with a validated unit graph. A manifest cycle fails the load.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // Path discovered under the caller's working directory
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var df deltaFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, errors.Join(domain.ErrConfigParseFailed, err)
	}

	root, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve project root")
	}

	project, err := l.buildProject(root, &df)
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "searched upward"), "cwd", cwd)
}

//nolint:cyclop // Straight-line DTO translation
func (l *Loader) buildProject(root string, df *deltaFile) (*domain.Project, error) {
	graph := domain.NewUnitGraph()
	owners := make(map[string]domain.InternedString)

	for _, dto := range df.Units {
		if err := validateUnitName(dto.Name); err != nil {
			return nil, err
		}

		deps := make([]domain.InternedString, len(dto.DependsOn))
		for i, dep := range dto.DependsOn {
			deps[i] = domain.NewInternedString(dep)
		}

		name := domain.NewInternedString(dto.Name)
		if err := graph.AddUnit(domain.Unit{
			Name:      name,
			DependsOn: deps,
			BuildCmd:  dto.Build,
		}); err != nil {
			return nil, err
		}

		if len(dto.Owns) == 0 {
			l.logger.Warn("unit " + dto.Name + " declares no ownership patterns; file changes will never map to it")
		}
		for _, pattern := range dto.Owns {
			owners[pattern] = name
		}
	}

	if err := graph.Validate(); err != nil {
		return nil, err
	}

	tracked := make([]domain.TrackedPattern, 0, len(df.Tracked))
	for _, dto := range df.Tracked {
		category, err := parseCategory(dto.Category)
		if err != nil {
			return nil, err
		}
		tracked = append(tracked, domain.TrackedPattern{
			Pattern:     dto.Pattern,
			Category:    category,
			BuildConfig: dto.BuildConfig,
		})
	}

	ttl := domain.DefaultCacheTTL
	if df.Cache.TTL != "" {
		parsed, err := time.ParseDuration(df.Cache.TTL)
		if err != nil {
			return nil, errors.Join(domain.ErrConfigParseFailed, zerr.Wrap(err, "invalid cache.ttl"))
		}
		ttl = parsed
	}

	timeout := domain.DefaultDelegateTimeout
	if df.Delegate.Timeout != "" {
		parsed, err := time.ParseDuration(df.Delegate.Timeout)
		if err != nil {
			return nil, errors.Join(domain.ErrConfigParseFailed, zerr.Wrap(err, "invalid delegate.timeout"))
		}
		timeout = parsed
	}

	task := df.Task
	if task == "" {
		task = "build"
	}

	globalPath := df.Cache.GlobalPath
	if globalPath != "" && !filepath.IsAbs(globalPath) {
		globalPath = filepath.Join(root, globalPath)
	}

	return &domain.Project{
		Root:            root,
		Graph:           graph,
		Tracked:         tracked,
		Ignore:          df.Ignore,
		UnitOwners:      owners,
		Task:            task,
		CriticalTests:   df.CriticalTests,
		TestCommand:     df.TestCommand,
		CacheTTL:        ttl,
		GlobalCachePath: globalPath,
		DelegateTimeout: timeout,
		TestParallelism: df.TestParallelism,
	}, nil
}

func validateUnitName(name string) error {
	if name == "" || !validUnitNameRegex.MatchString(name) {
		return zerr.Wrap(domain.ErrInvalidUnitName, name)
	}
	return nil
}

func parseCategory(s string) (domain.FileCategory, error) {
	switch domain.FileCategory(s) {
	case domain.CategorySource, domain.CategoryTest, domain.CategoryConfig, domain.CategoryDoc:
		return domain.FileCategory(s), nil
	case "":
		return domain.CategorySource, nil
	default:
		return "", zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "unknown file category"), "category", s)
	}
}
