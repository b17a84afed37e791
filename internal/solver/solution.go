package solver

// Unplanned reasons recorded on the solution.
const (
	reasonNoInitial  = "no initial assignment"
	reasonSplit      = "initial stops split across vehicles"
	reasonIncomplete = "incomplete initial assignment"
	reasonOutOfOrder = "initial stops out of order"
	reasonDestroyed  = "removed by destroy operator"
	reasonReset      = "removed by reset operator"
)

// SolutionVehicle is one vehicle's assigned route: an ordered sequence of
// stop indices and its travel cost.
type SolutionVehicle struct {
	Index int
	Route []int
	Cost  float64
}

// UnplannedUnit is a plan unit not assigned to any route, with the reason it
// ended up there.
type UnplannedUnit struct {
	Unit   int
	Reason string
}

// Solution is a candidate assignment of plan units to vehicle routes. Every
// stop appears in exactly one route or belongs to a unit on the unplanned
// list, never both. Solutions are immutable from the caller's point of view:
// Apply returns a new Solution and leaves the receiver untouched.
type Solution struct {
	model           *Model
	vehicles        []SolutionVehicle
	unplanned       []UnplannedUnit
	value           float64
	infeasibleSkips int
}

// NewSolution seeds the initial state from the model: one route per vehicle,
// populated from the vehicle's initial stops. A plan unit is planned at seed
// time only when every one of its stops appears in the same vehicle's initial
// stops and in the unit's declared order; any other configuration leaves the
// whole unit unplanned with the precise reason, and none of its stops enter a
// route.
func NewSolution(m *Model) *Solution {
	type placement struct {
		vehicle int
		pos     int
	}
	placed := map[int]placement{}
	for _, v := range m.vehicles {
		for pos, stop := range v.InitialStops {
			if _, dup := placed[stop]; dup {
				continue // first occurrence wins
			}
			placed[stop] = placement{vehicle: v.Index, pos: pos}
		}
	}

	plannedOn := make([]int, len(m.planUnits)) // -1 = unplanned
	s := &Solution{model: m}
	for _, unit := range m.planUnits {
		plannedOn[unit.Index] = -1
		seen := 0
		vehicle := -1
		lastPos := -1
		ordered := true
		sameVehicle := true
		for _, stop := range unit.Stops {
			pl, ok := placed[stop]
			if !ok {
				continue
			}
			seen++
			if vehicle == -1 {
				vehicle = pl.vehicle
			} else if pl.vehicle != vehicle {
				sameVehicle = false
			}
			if pl.pos < lastPos {
				ordered = false
			}
			lastPos = pl.pos
		}
		switch {
		case seen == 0:
			s.unplanned = append(s.unplanned, UnplannedUnit{Unit: unit.Index, Reason: reasonNoInitial})
		case !sameVehicle:
			s.unplanned = append(s.unplanned, UnplannedUnit{Unit: unit.Index, Reason: reasonSplit})
		case seen < len(unit.Stops):
			s.unplanned = append(s.unplanned, UnplannedUnit{Unit: unit.Index, Reason: reasonIncomplete})
		case !ordered:
			s.unplanned = append(s.unplanned, UnplannedUnit{Unit: unit.Index, Reason: reasonOutOfOrder})
		default:
			plannedOn[unit.Index] = vehicle
		}
	}

	s.vehicles = make([]SolutionVehicle, len(m.vehicles))
	for _, v := range m.vehicles {
		sv := SolutionVehicle{Index: v.Index}
		for pos, stop := range v.InitialStops {
			pl := placed[stop]
			if pl.vehicle != v.Index || pl.pos != pos {
				continue // repeated occurrence, or owned by an earlier vehicle
			}
			if plannedOn[m.UnitOf(stop)] == v.Index {
				sv.Route = append(sv.Route, stop)
			}
		}
		s.vehicles[v.Index] = sv
	}
	s.computeValue(&Plan{})
	return s
}

// Model returns the problem instance this solution belongs to.
func (s *Solution) Model() *Model { return s.model }

// Value is the weighted sum of all registered objective evaluations. Lower is
// better.
func (s *Solution) Value() float64 { return s.value }

// Vehicles returns the per-vehicle routes. Treat the result as read-only.
func (s *Solution) Vehicles() []SolutionVehicle { return s.vehicles }

// Unplanned returns the plan units outside any route, with reasons.
func (s *Solution) Unplanned() []UnplannedUnit { return s.unplanned }

// InfeasibleSkips counts plan assignments vetoed by constraints while this
// solution was built.
func (s *Solution) InfeasibleSkips() int { return s.infeasibleSkips }

// Best returns whichever of the two solutions has the strictly lower value;
// ties keep the receiver.
func (s *Solution) Best(other *Solution) *Solution {
	if other == nil || s.value <= other.value {
		return s
	}
	return other
}

// Apply produces the solution that results from the plan's change set.
// Resets happen first, then removals, then assignments. Assignments a
// constraint vetoes are skipped and counted, never fatal. The receiver is not
// modified.
func (s *Solution) Apply(p *Plan) *Solution {
	if p.IsNoop() {
		return s
	}
	if p.ResetAll {
		next := NewSolution(s.model)
		next.infeasibleSkips = s.infeasibleSkips
		return next
	}

	next := s.clone()
	for _, vi := range p.ResetVehicles {
		next.resetVehicle(vi)
	}
	for _, unit := range p.Removals {
		next.removeUnit(unit, reasonDestroyed)
	}
	for _, a := range p.Assignments {
		next.tryAssign(a)
	}
	next.computeValue(p)
	return next
}

func (s *Solution) clone() *Solution {
	next := &Solution{
		model:           s.model,
		vehicles:        make([]SolutionVehicle, len(s.vehicles)),
		unplanned:       append([]UnplannedUnit(nil), s.unplanned...),
		value:           s.value,
		infeasibleSkips: s.infeasibleSkips,
	}
	for i, v := range s.vehicles {
		next.vehicles[i] = SolutionVehicle{
			Index: v.Index,
			Route: append([]int(nil), v.Route...),
			Cost:  v.Cost,
		}
	}
	return next
}

// resetVehicle reverts one vehicle toward the seed solution: everything
// currently routed on it goes unplanned, then the seed's units for that
// vehicle come back as long as they are free.
func (s *Solution) resetVehicle(vehicle int) {
	if vehicle < 0 || vehicle >= len(s.vehicles) {
		return
	}
	for _, unit := range s.unitsOn(vehicle) {
		s.removeUnit(unit, reasonReset)
	}
	seed := NewSolution(s.model)
	for _, stop := range seed.vehicles[vehicle].Route {
		unit := s.model.UnitOf(stop)
		if i := s.unplannedIndex(unit); i >= 0 {
			s.unplanned = append(s.unplanned[:i], s.unplanned[i+1:]...)
			s.vehicles[vehicle].Route = append(s.vehicles[vehicle].Route, stop)
		} else if s.routeOf(unit) == vehicle {
			s.vehicles[vehicle].Route = append(s.vehicles[vehicle].Route, stop)
		}
	}
}

// removeUnit pulls a planned unit's stops out of its route and records it as
// unplanned. A unit already unplanned is left as is.
func (s *Solution) removeUnit(unit int, reason string) {
	if unit < 0 || unit >= len(s.model.planUnits) || s.unplannedIndex(unit) >= 0 {
		return
	}
	member := map[int]bool{}
	for _, stop := range s.model.planUnits[unit].Stops {
		member[stop] = true
	}
	removed := false
	for i := range s.vehicles {
		route := s.vehicles[i].Route[:0]
		for _, stop := range s.vehicles[i].Route {
			if member[stop] {
				removed = true
				continue
			}
			route = append(route, stop)
		}
		s.vehicles[i].Route = route
	}
	if removed {
		s.unplanned = append(s.unplanned, UnplannedUnit{Unit: unit, Reason: reason})
	}
}

// tryAssign inserts an unplanned unit at the requested position, rolling back
// when any constraint rejects the result.
func (s *Solution) tryAssign(a Assignment) {
	ui := s.unplannedIndex(a.Unit)
	if ui < 0 || a.Vehicle < 0 || a.Vehicle >= len(s.vehicles) {
		return
	}
	route := s.vehicles[a.Vehicle].Route
	pos := a.Position
	if pos < 0 {
		pos = 0
	}
	if pos > len(route) {
		pos = len(route)
	}
	stops := s.model.planUnits[a.Unit].Stops
	candidate := make([]int, 0, len(route)+len(stops))
	candidate = append(candidate, route[:pos]...)
	candidate = append(candidate, stops...)
	candidate = append(candidate, route[pos:]...)

	s.vehicles[a.Vehicle].Route = candidate
	for _, c := range s.model.constraints {
		if !c.IsFeasible(s.model, s, nil) {
			s.vehicles[a.Vehicle].Route = route
			s.infeasibleSkips++
			return
		}
	}
	s.unplanned = append(s.unplanned[:ui], s.unplanned[ui+1:]...)
}

func (s *Solution) unplannedIndex(unit int) int {
	for i, u := range s.unplanned {
		if u.Unit == unit {
			return i
		}
	}
	return -1
}

// routeOf returns the vehicle a unit is planned on, or -1.
func (s *Solution) routeOf(unit int) int {
	stops := s.model.planUnits[unit].Stops
	if len(stops) == 0 {
		return -1
	}
	first := stops[0]
	for i := range s.vehicles {
		for _, stop := range s.vehicles[i].Route {
			if stop == first {
				return i
			}
		}
	}
	return -1
}

// unitsOn lists the units currently planned on a vehicle, in route order.
func (s *Solution) unitsOn(vehicle int) []int {
	var units []int
	seen := map[int]bool{}
	for _, stop := range s.vehicles[vehicle].Route {
		unit := s.model.UnitOf(stop)
		if !seen[unit] {
			seen[unit] = true
			units = append(units, unit)
		}
	}
	return units
}

// plannedUnits lists every unit currently assigned to some route.
func (s *Solution) plannedUnits() []int {
	var units []int
	for i := range s.vehicles {
		units = append(units, s.unitsOn(i)...)
	}
	return units
}

func (s *Solution) computeValue(p *Plan) {
	for i := range s.vehicles {
		s.vehicles[i].Cost = routeCost(s.model, s.vehicles[i].Route)
	}
	total := 0.0
	for _, wo := range s.model.objectives {
		total += wo.weight * wo.objective.Compute(s.model, s, p)
	}
	s.value = total
}
