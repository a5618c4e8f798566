package domain

import "time"

// BuildPlan partitions the unit set into units that must rebuild and units
// whose previous outputs remain valid. Rebuild always contains the changed
// units and their reverse transitive closure; the planner may over-include
// but never under-include.
type BuildPlan struct {
	Rebuild       []InternedString
	Preserve      []InternedString
	EstimatedCost time.Duration
}

// RebuildSet returns the rebuild partition as a lookup set.
func (p *BuildPlan) RebuildSet() map[InternedString]struct{} {
	out := make(map[InternedString]struct{}, len(p.Rebuild))
	for _, u := range p.Rebuild {
		out[u] = struct{}{}
	}
	return out
}

// IsFullRebuild reports whether every unit is scheduled for rebuild.
func (p *BuildPlan) IsFullRebuild() bool {
	return len(p.Preserve) == 0 && len(p.Rebuild) > 0
}
