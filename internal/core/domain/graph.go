// Package domain contains the core domain models for the incremental build
// and change-impact engine.
package domain

import (
	"sort"

	"go.trai.ch/zerr"
)

// Unit is one build unit in the dependency graph.
type Unit struct {
	Name InternedString
	// DependsOn lists the units this unit depends on. An edge A -> B means
	// A must rebuild if B changes.
	DependsOn []InternedString
	// BuildCmd is the command the build executor runs to rebuild the unit.
	BuildCmd []string
}

// Unit returns the named unit.
func (g *UnitGraph) Unit(name InternedString) (Unit, bool) {
	u, ok := g.units[name]
	return u, ok
}

// UnitGraph is a directed dependency graph over build units, constructed
// from an externally supplied manifest. It is never inferred from source.
type UnitGraph struct {
	units   map[InternedString]Unit
	reverse map[InternedString][]InternedString
}

// NewUnitGraph creates a new empty UnitGraph.
func NewUnitGraph() *UnitGraph {
	return &UnitGraph{
		units:   make(map[InternedString]Unit),
		reverse: make(map[InternedString][]InternedString),
	}
}

// AddUnit adds a unit to the graph.
// It returns an error if a unit with the same name already exists.
func (g *UnitGraph) AddUnit(u Unit) error {
	if _, exists := g.units[u.Name]; exists {
		return zerr.Wrap(ErrUnitAlreadyExists, u.Name.String())
	}
	g.units[u.Name] = u
	return nil
}

// HasUnit reports whether the graph contains the named unit.
func (g *UnitGraph) HasUnit(name InternedString) bool {
	_, ok := g.units[name]
	return ok
}

// Len returns the number of units in the graph.
func (g *UnitGraph) Len() int {
	return len(g.units)
}

// Units returns all unit names in lexical order.
func (g *UnitGraph) Units() []InternedString {
	names := make([]InternedString, 0, len(g.units))
	for name := range g.units {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return names[i].String() < names[j].String()
	})
	return names
}

// Validate checks that every declared dependency exists and that the graph
// is acyclic. It also populates the reverse edge index used by
// ReverseDependents. A cycle is a planning error, never silently resolved.
func (g *UnitGraph) Validate() error {
	g.reverse = make(map[InternedString][]InternedString, len(g.units))

	visited := make(map[InternedString]int, len(g.units)) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		unit := g.units[u]
		for _, dep := range unit.DependsOn {
			if _, exists := g.units[dep]; !exists {
				return zerr.With(zerr.Wrap(ErrMissingDependency, dep.String()), "unit", u.String())
			}
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		return nil
	}

	for _, name := range g.Units() {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	for name, unit := range g.units {
		for _, dep := range unit.DependsOn {
			g.reverse[dep] = append(g.reverse[dep], name)
		}
	}

	return nil
}

// buildCycleError constructs an error carrying the cycle path metadata.
func (g *UnitGraph) buildCycleError(path []InternedString, dep InternedString) error {
	cyclePath := ""
	startIdx := -1
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += dep.String()
	return zerr.Wrap(ErrCycleDetected, cyclePath)
}

// ReverseDependents returns every unit with a dependency path to the given
// unit, i.e. the units affected if it changes. The unit itself is not
// included. Validate must have been called.
func (g *UnitGraph) ReverseDependents(name InternedString) ([]InternedString, error) {
	if _, ok := g.units[name]; !ok {
		return nil, zerr.Wrap(ErrUnknownUnit, name.String())
	}

	seen := map[InternedString]struct{}{name: {}}
	queue := []InternedString{name}
	var out []InternedString

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dependent := range g.reverse[current] {
			if _, ok := seen[dependent]; ok {
				continue
			}
			seen[dependent] = struct{}{}
			out = append(out, dependent)
			queue = append(queue, dependent)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out, nil
}
