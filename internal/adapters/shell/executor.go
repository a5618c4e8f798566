// Package shell provides the shell-backed build executor and test runner
// collaborators.
package shell

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"go.trai.ch/delta/internal/core/domain"
	"go.trai.ch/delta/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildExecutor = (*Executor)(nil)

// Executor implements ports.BuildExecutor using os/exec. Units rebuild
// sequentially in the order handed over by the engine; per-unit durations
// are measured for the metrics history.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new shell executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute rebuilds the given units by running each unit's build command in
// the project root. The first failure aborts the remaining units; results
// collected so far are returned with the error so the caller can record
// durations.
func (e *Executor) Execute(ctx context.Context, project *domain.Project, units []domain.InternedString) ([]domain.UnitResult, error) {
	results := make([]domain.UnitResult, 0, len(units))

	for _, name := range units {
		unit, ok := project.Graph.Unit(name)
		if !ok {
			return results, zerr.Wrap(domain.ErrUnknownUnit, name.String())
		}
		if len(unit.BuildCmd) == 0 {
			// Units without a build command are grouping nodes.
			results = append(results, domain.UnitResult{Unit: name, Success: true})
			continue
		}

		e.logger.Info("rebuilding " + name.String())

		start := time.Now()
		err := e.runCommand(ctx, project.Root, unit.BuildCmd)
		result := domain.UnitResult{
			Unit:     name,
			Success:  err == nil,
			Duration: time.Since(start),
		}
		results = append(results, result)

		if err != nil {
			return results, zerr.With(zerr.Wrap(err, "unit build failed"), "unit", name.String())
		}
	}

	return results, nil
}

func (e *Executor) runCommand(ctx context.Context, dir string, command []string) error {
	cmd := exec.CommandContext(ctx, command[0], command[1:]...) //nolint:gosec // Manifest-provided command
	cmd.Dir = dir
	cmd.Stdout = &logWriter{logger: e.logger, level: "info"}
	cmd.Stderr = &logWriter{logger: e.logger, level: "error"}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}
	return nil
}

// logWriter streams child process output to the logger line by line.
type logWriter struct {
	logger ports.Logger
	level  string
}

func (w *logWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")
	if msg != "" {
		if w.level == "error" {
			w.logger.Warn(msg)
		} else {
			w.logger.Info(msg)
		}
	}
	return len(p), nil
}
