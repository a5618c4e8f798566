// Package planner combines a change set with the dependency graph into a
// rebuild plan.
package planner

import (
	"sort"
	"time"

	"go.trai.ch/delta/internal/core/domain"
	"go.trai.ch/delta/internal/core/ports"
)

// Planner computes build plans over the reverse transitive closure of the
// changed units.
type Planner struct {
	logger ports.Logger
}

// New creates a new Planner.
func New(logger ports.Logger) *Planner {
	return &Planner{logger: logger}
}

// Plan maps the changed paths onto graph units, expands the set over the
// reverse dependency edges, and partitions the unit set into rebuild and
// preserve. The rebuild set always contains the changed units and every
// unit with a dependency path to them; the planner may over-include but
// never under-include. A changed path owned by no unit affects nothing
// beyond itself.
func (p *Planner) Plan(
	cs *domain.ChangeSet,
	project *domain.Project,
	history map[string]time.Duration,
) (*domain.BuildPlan, error) {
	directly := make(map[domain.InternedString]struct{})
	for _, path := range cs.Changed().Sorted() {
		unit, ok := project.OwnerOf(path)
		if !ok {
			p.logger.Warn("changed path " + path + " is owned by no unit")
			continue
		}
		directly[unit] = struct{}{}
	}

	rebuildSet := make(map[domain.InternedString]struct{}, len(directly))
	for unit := range directly {
		rebuildSet[unit] = struct{}{}
		dependents, err := project.Graph.ReverseDependents(unit)
		if err != nil {
			return nil, err
		}
		for _, dep := range dependents {
			rebuildSet[dep] = struct{}{}
		}
	}

	return p.assemble(project, rebuildSet, history), nil
}

// FullRebuild returns a plan rebuilding every unit. The engine uses it when
// a build-wide configuration file changed or no baseline exists.
func (p *Planner) FullRebuild(project *domain.Project, history map[string]time.Duration) *domain.BuildPlan {
	rebuildSet := make(map[domain.InternedString]struct{}, project.Graph.Len())
	for _, unit := range project.Graph.Units() {
		rebuildSet[unit] = struct{}{}
	}
	return p.assemble(project, rebuildSet, history)
}

func (p *Planner) assemble(
	project *domain.Project,
	rebuildSet map[domain.InternedString]struct{},
	history map[string]time.Duration,
) *domain.BuildPlan {
	plan := &domain.BuildPlan{}

	for _, unit := range project.Graph.Units() {
		if _, ok := rebuildSet[unit]; ok {
			plan.Rebuild = append(plan.Rebuild, unit)
			plan.EstimatedCost += unitEstimate(unit, history)
		} else {
			plan.Preserve = append(plan.Preserve, unit)
		}
	}

	sortPlanUnits(plan.Rebuild)
	sortPlanUnits(plan.Preserve)
	return plan
}

// unitEstimate prices one unit from history, falling back to the flat
// default so an empty history still orders plans sensibly.
func unitEstimate(unit domain.InternedString, history map[string]time.Duration) time.Duration {
	if d, ok := history[unit.String()]; ok && d > 0 {
		return d
	}
	return domain.DefaultUnitEstimate
}

func sortPlanUnits(units []domain.InternedString) {
	sort.Slice(units, func(i, j int) bool {
		return units[i].String() < units[j].String()
	})
}
