package solver

// Constraint is a boolean feasibility check a candidate solution must
// satisfy. Implementations must be side-effect free.
type Constraint interface {
	Name() string
	IsFeasible(m *Model, s *Solution, p *Plan) bool
}

// TemporalConstraint is optionally implemented by constraints whose
// feasibility depends on schedule times rather than structure alone.
type TemporalConstraint interface {
	Constraint
	IsTemporal() bool
}

// CapacityConstraint keeps each vehicle's running load within its declared
// capacity for every quantity key. Pickups carry positive quantities and
// deliveries negative ones, so the running sum tracks what is on board.
type CapacityConstraint struct{}

func (CapacityConstraint) Name() string { return "vehicle_capacity" }

func (CapacityConstraint) IsFeasible(m *Model, s *Solution, _ *Plan) bool {
	for i := range s.vehicles {
		v := m.vehicles[s.vehicles[i].Index]
		if len(v.Capacity) == 0 {
			continue
		}
		load := map[string]float64{}
		for _, stop := range s.vehicles[i].Route {
			for key, q := range m.stops[stop].Quantity {
				load[key] += q
				if limit, bounded := v.Capacity[key]; bounded && load[key] > limit {
					return false
				}
			}
		}
	}
	return true
}

// PrecedenceConstraint requires that a stop precedes its declared target
// within the same route.
type PrecedenceConstraint struct{}

func (PrecedenceConstraint) Name() string { return "stop_precedence" }

func (PrecedenceConstraint) IsFeasible(m *Model, s *Solution, _ *Plan) bool {
	for i := range s.vehicles {
		pos := make(map[int]int, len(s.vehicles[i].Route))
		for p, stop := range s.vehicles[i].Route {
			pos[stop] = p
		}
		for p, stop := range s.vehicles[i].Route {
			for _, target := range m.stops[stop].Precedes {
				tp, sameRoute := pos[target]
				if !sameRoute || tp < p {
					return false
				}
			}
		}
	}
	return true
}
