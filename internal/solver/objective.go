package solver

// unplannedPenalty makes a single unplanned unit dominate any distance
// saving.
const unplannedPenalty = 3600.0

// unreachableLegCost stands in for a leg with no path at all.
const unreachableLegCost = 1e9

// Objective is a scored criterion contributing to a solution's scalar value.
// Implementations must be side-effect free.
type Objective interface {
	Name() string
	Compute(m *Model, s *Solution, p *Plan) float64
}

// Objectives returns the registered objectives in registration order.
func (m *Model) Objectives() []Objective {
	out := make([]Objective, len(m.objectives))
	for i, wo := range m.objectives {
		out[i] = wo.objective
	}
	return out
}

// UnplannedObjective counts plan units still on the unplanned list. With its
// default weight it dominates the value, so the search always prefers
// planning more work over shortening routes.
type UnplannedObjective struct{}

func (UnplannedObjective) Name() string { return "unplanned" }

func (UnplannedObjective) Compute(_ *Model, s *Solution, _ *Plan) float64 {
	return float64(len(s.unplanned))
}

// DistanceObjective is the total travel cost across all vehicle routes. Legs
// without a direct matrix entry are priced by shortest-path search over the
// travel graph; disconnected legs cost unreachableLegCost.
type DistanceObjective struct{}

func (DistanceObjective) Name() string { return "distance" }

func (DistanceObjective) Compute(m *Model, s *Solution, _ *Plan) float64 {
	total := 0.0
	for i := range s.vehicles {
		total += routeCost(m, s.vehicles[i].Route)
	}
	return total
}

// routeCost prices an ordered stop sequence leg by leg.
func routeCost(m *Model, route []int) float64 {
	total := 0.0
	for i := 0; i+1 < len(route); i++ {
		d, ok := m.LegCost(route[i], route[i+1])
		if !ok {
			d = unreachableLegCost
		}
		total += d
	}
	return total
}
