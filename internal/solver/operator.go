package solver

// Operator is a pluggable search strategy: it inspects the current solution
// and proposes a Plan. Operators never fail; when they cannot act they return
// the neutral plan.
type Operator interface {
	Name() string
	// Execute proposes a change set against the current solution. It must not
	// mutate the solution.
	Execute(m *Model, s *Solution, r *Random) Plan
	// Chance gates whether the operator fires in a given iteration, in [0,1].
	Chance() float64
}

// OperatorParameters tune an operator variant: Value is the variant-specific
// magnitude (how many units to touch), Chance the per-iteration firing
// probability.
type OperatorParameters struct {
	Value  float64
	Chance float64
}

// count interprets Value as a positive whole number of units.
func (p OperatorParameters) count() int {
	n := int(p.Value)
	if n < 1 {
		n = 1
	}
	return n
}

// RepairRandom reinserts up to Value unplanned units at random feasible
// positions.
type RepairRandom struct {
	Params OperatorParameters
}

func (o RepairRandom) Name() string    { return "repair_random" }
func (o RepairRandom) Chance() float64 { return o.Params.Chance }

func (o RepairRandom) Execute(m *Model, s *Solution, r *Random) Plan {
	unplanned := s.Unplanned()
	if len(unplanned) == 0 || len(s.vehicles) == 0 {
		return Plan{}
	}
	var plan Plan
	order := r.Perm(len(unplanned))
	for _, i := range order[:min(o.Params.count(), len(order))] {
		vehicle := r.RangeInt(0, len(s.vehicles))
		pos := r.RangeInt(0, len(s.vehicles[vehicle].Route)+1)
		plan.Assignments = append(plan.Assignments, Assignment{
			Unit:     unplanned[i].Unit,
			Vehicle:  vehicle,
			Position: pos,
		})
	}
	return plan
}

// RepairNearest reinserts up to Value unplanned units at the cheapest
// position across all routes, pricing legs through the distance matrix and
// the shortest-path engine.
type RepairNearest struct {
	Params OperatorParameters
}

func (o RepairNearest) Name() string    { return "repair_nearest" }
func (o RepairNearest) Chance() float64 { return o.Params.Chance }

func (o RepairNearest) Execute(m *Model, s *Solution, r *Random) Plan {
	unplanned := s.Unplanned()
	if len(unplanned) == 0 || len(s.vehicles) == 0 {
		return Plan{}
	}
	var plan Plan
	order := r.Perm(len(unplanned))
	for _, i := range order[:min(o.Params.count(), len(order))] {
		unit := unplanned[i].Unit
		vehicle, pos, ok := cheapestInsertion(m, s, unit)
		if !ok {
			continue
		}
		plan.Assignments = append(plan.Assignments, Assignment{Unit: unit, Vehicle: vehicle, Position: pos})
	}
	return plan
}

// cheapestInsertion scans every route position for the lowest insertion cost
// delta of the unit's stop sequence.
func cheapestInsertion(m *Model, s *Solution, unit int) (vehicle, position int, ok bool) {
	stops := m.planUnits[unit].Stops
	if len(stops) == 0 {
		return 0, 0, false
	}
	best := 0.0
	for vi := range s.vehicles {
		route := s.vehicles[vi].Route
		for pos := 0; pos <= len(route); pos++ {
			delta, feasible := insertionDelta(m, route, stops, pos)
			if !feasible {
				continue
			}
			if !ok || delta < best {
				best = delta
				vehicle, position = vi, pos
				ok = true
			}
		}
	}
	return vehicle, position, ok
}

// insertionDelta prices inserting a stop sequence at pos: added legs minus
// the leg the insertion splits.
func insertionDelta(m *Model, route, stops []int, pos int) (float64, bool) {
	delta := 0.0
	for i := 0; i+1 < len(stops); i++ {
		d, ok := m.LegCost(stops[i], stops[i+1])
		if !ok {
			return 0, false
		}
		delta += d
	}
	if pos > 0 {
		d, ok := m.LegCost(route[pos-1], stops[0])
		if !ok {
			return 0, false
		}
		delta += d
	}
	if pos < len(route) {
		d, ok := m.LegCost(stops[len(stops)-1], route[pos])
		if !ok {
			return 0, false
		}
		delta += d
	}
	if pos > 0 && pos < len(route) {
		d, ok := m.LegCost(route[pos-1], route[pos])
		if ok {
			delta -= d
		}
	}
	return delta, true
}

// DestroyRandom removes up to Value random planned units back to the
// unplanned list.
type DestroyRandom struct {
	Params OperatorParameters
}

func (o DestroyRandom) Name() string    { return "destroy_random" }
func (o DestroyRandom) Chance() float64 { return o.Params.Chance }

func (o DestroyRandom) Execute(_ *Model, s *Solution, r *Random) Plan {
	planned := s.plannedUnits()
	if len(planned) == 0 {
		return Plan{}
	}
	var plan Plan
	order := r.Perm(len(planned))
	for _, i := range order[:min(o.Params.count(), len(order))] {
		plan.Removals = append(plan.Removals, planned[i])
	}
	return plan
}

// DestroyWorst removes the units whose absence saves the most route cost.
type DestroyWorst struct {
	Params OperatorParameters
}

func (o DestroyWorst) Name() string    { return "destroy_worst" }
func (o DestroyWorst) Chance() float64 { return o.Params.Chance }

func (o DestroyWorst) Execute(m *Model, s *Solution, _ *Random) Plan {
	planned := s.plannedUnits()
	if len(planned) == 0 {
		return Plan{}
	}
	type scored struct {
		unit   int
		saving float64
	}
	scores := make([]scored, 0, len(planned))
	for _, unit := range planned {
		scores = append(scores, scored{unit: unit, saving: removalSaving(m, s, unit)})
	}
	// selection of the top-k by saving; k is small
	k := min(o.Params.count(), len(scores))
	var plan Plan
	for n := 0; n < k; n++ {
		best := n
		for i := n + 1; i < len(scores); i++ {
			if scores[i].saving > scores[best].saving {
				best = i
			}
		}
		scores[n], scores[best] = scores[best], scores[n]
		plan.Removals = append(plan.Removals, scores[n].unit)
	}
	return plan
}

// removalSaving measures how much route cost disappears when the unit's
// stops leave their route.
func removalSaving(m *Model, s *Solution, unit int) float64 {
	vi := s.routeOf(unit)
	if vi < 0 {
		return 0
	}
	member := map[int]bool{}
	for _, stop := range m.planUnits[unit].Stops {
		member[stop] = true
	}
	before := routeCost(m, s.vehicles[vi].Route)
	trimmed := make([]int, 0, len(s.vehicles[vi].Route))
	for _, stop := range s.vehicles[vi].Route {
		if !member[stop] {
			trimmed = append(trimmed, stop)
		}
	}
	return before - routeCost(m, trimmed)
}

// ResetFull reverts the whole solution to the seed state.
type ResetFull struct {
	Params OperatorParameters
}

func (o ResetFull) Name() string    { return "reset_full" }
func (o ResetFull) Chance() float64 { return o.Params.Chance }

func (o ResetFull) Execute(_ *Model, _ *Solution, _ *Random) Plan {
	return Plan{ResetAll: true}
}

// ResetPartial reverts up to Value random vehicles to their seed routes.
type ResetPartial struct {
	Params OperatorParameters
}

func (o ResetPartial) Name() string    { return "reset_partial" }
func (o ResetPartial) Chance() float64 { return o.Params.Chance }

func (o ResetPartial) Execute(_ *Model, s *Solution, r *Random) Plan {
	if len(s.vehicles) == 0 {
		return Plan{}
	}
	var plan Plan
	order := r.Perm(len(s.vehicles))
	for _, vi := range order[:min(o.Params.count(), len(order))] {
		plan.ResetVehicles = append(plan.ResetVehicles, vi)
	}
	return plan
}
