package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/delta/internal/adapters/config"
	"go.trai.ch/delta/internal/core/domain"
	"go.trai.ch/delta/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), domain.FilePerm))
}

const sampleConfig = `
task: build
tracked:
  - pattern: "tests/**/*.py"
    category: test
  - pattern: "**/*.py"
    category: source
  - pattern: "build.yaml"
    category: config
    buildConfig: true
ignore:
  - "**/__pycache__/**"
units:
  - name: core
    owns: ["core/**"]
    build: ["make", "core"]
  - name: lib
    dependsOn: [core]
    owns: ["lib/**"]
    build: ["make", "lib"]
  - name: app
    dependsOn: [lib]
    owns: ["app/**"]
    build: ["make", "app"]
criticalTests:
  - tests/integration/test_smoke.py
testCommand: ["pytest"]
cache:
  ttl: 12h
  globalPath: shared/cache.db
delegate:
  timeout: 5m
testParallelism: 4
`

func TestLoader_Load(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, sampleConfig)

	project, err := newLoader(t).Load(root)
	require.NoError(t, err)

	assert.Equal(t, "build", project.Task)
	assert.Equal(t, 3, project.Graph.Len())
	assert.Equal(t, 12*time.Hour, project.CacheTTL)
	assert.Equal(t, 5*time.Minute, project.DelegateTimeout)
	assert.Equal(t, 4, project.TestParallelism)
	assert.Equal(t, []string{"pytest"}, project.TestCommand)
	assert.Equal(t, []string{"tests/integration/test_smoke.py"}, project.CriticalTests)

	// Relative global cache paths anchor to the project root.
	assert.Equal(t, filepath.Join(project.Root, "shared/cache.db"), project.GlobalCachePath)

	// Ownership and reverse edges survived the load.
	owner, ok := project.OwnerOf("lib/util.py")
	require.True(t, ok)
	assert.Equal(t, "lib", owner.String())

	dependents, err := project.Graph.ReverseDependents(domain.NewInternedString("core"))
	require.NoError(t, err)
	require.Len(t, dependents, 2)
}

func TestLoader_Load_SearchesUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, sampleConfig)

	nested := filepath.Join(root, "lib", "deep")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	project, err := newLoader(t).Load(nested)
	require.NoError(t, err)

	resolved, err := filepath.EvalSymlinks(project.Root)
	require.NoError(t, err)
	expected, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, expected, resolved)
}

func TestLoader_Load_NotFound(t *testing.T) {
	_, err := newLoader(t).Load(t.TempDir())
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestLoader_Load_Defaults(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
units:
  - name: only
    owns: ["**"]
`)

	project, err := newLoader(t).Load(root)
	require.NoError(t, err)

	assert.Equal(t, "build", project.Task)
	assert.Equal(t, domain.DefaultCacheTTL, project.CacheTTL)
	assert.Equal(t, domain.DefaultDelegateTimeout, project.DelegateTimeout)
	assert.Empty(t, project.GlobalCachePath)
}

func TestLoader_Load_ManifestCycle(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
units:
  - name: a
    dependsOn: [b]
  - name: b
    dependsOn: [a]
`)

	_, err := newLoader(t).Load(root)
	require.ErrorIs(t, err, domain.ErrCycleDetected)
}

func TestLoader_Load_InvalidUnitName(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
units:
  - name: "bad name!"
`)

	_, err := newLoader(t).Load(root)
	require.ErrorIs(t, err, domain.ErrInvalidUnitName)
}

func TestLoader_Load_BadTTL(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
cache:
  ttl: soon
`)

	_, err := newLoader(t).Load(root)
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}
