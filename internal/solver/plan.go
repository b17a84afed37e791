package solver

// Assignment places an unplanned plan unit onto a vehicle. The unit's stops
// are inserted contiguously, in unit order, starting at Position (clamped to
// the route bounds).
type Assignment struct {
	Unit     int
	Vehicle  int
	Position int
}

// Plan is the change set an operator proposes against a solution: units to
// pull back to the unplanned list, units to insert, and optional reverts
// toward the seed solution. The zero value is the neutral no-op plan, which
// is what operators return when they cannot act.
type Plan struct {
	Assignments   []Assignment
	Removals      []int
	ResetAll      bool
	ResetVehicles []int
}

// IsNoop reports whether applying the plan would change nothing.
func (p *Plan) IsNoop() bool {
	return p == nil ||
		(len(p.Assignments) == 0 && len(p.Removals) == 0 && !p.ResetAll && len(p.ResetVehicles) == 0)
}
