// Package solver implements the routing engine: an immutable problem model,
// candidate solutions, and an adaptive local-search loop that destroys and
// repairs routes under pluggable objectives and constraints.
package solver

import (
	"fmt"
	"math"

	"routesolver/internal/graph"
	"routesolver/internal/model"
)

// Location is a geographic point.
type Location struct {
	Lat float64
	Lon float64
}

// Stop is a location to visit. Stops reference each other by index only;
// Precedes holds the index of the stop this one must be serviced before
// (at most one, enforced at build time).
type Stop struct {
	ID       string
	Index    int
	Location Location
	Quantity map[string]float64
	Window   [2]uint64
	Precedes []int
}

// Vehicle is a fleet unit. InitialStops are resolved stop indices seeding the
// vehicle's route.
type Vehicle struct {
	ID           string
	Index        int
	Capacity     map[string]float64
	Speed        float64
	InitialStops []int
}

// PlanUnit groups stops that must always be planned together, e.g. a
// pickup/delivery pair. Units partition the stop set.
type PlanUnit struct {
	Index int
	Stops []int
}

// DistanceMatrix is a dense pairwise travel cost source indexed by stop
// position.
type DistanceMatrix struct {
	cells [][]float64
}

// NewDistanceMatrix wraps a dense matrix. Validation happens in Build.
func NewDistanceMatrix(cells [][]float64) *DistanceMatrix {
	return &DistanceMatrix{cells: cells}
}

// At returns the travel cost from one stop index to another.
func (d *DistanceMatrix) At(from, to int) float64 { return d.cells[from][to] }

// Len returns the matrix dimension.
func (d *DistanceMatrix) Len() int { return len(d.cells) }

// Model is an immutable problem instance: stops, vehicles, the plan-unit
// partition, a distance source, and the registered objective, constraint and
// expression strategies. Built once; read-only while solving, so it may be
// shared across concurrent solver instances.
type Model struct {
	stops       []Stop
	vehicles    []Vehicle
	planUnits   []PlanUnit
	unitOfStop  []int
	matrix      *DistanceMatrix
	travel      *graph.Graph[int]
	objectives  []weightedObjective
	constraints []Constraint
	expressions []Expression
}

type weightedObjective struct {
	objective Objective
	weight    float64
}

// Stops returns all stops in index order.
func (m *Model) Stops() []Stop { return m.stops }

// Vehicles returns all vehicles in index order.
func (m *Model) Vehicles() []Vehicle { return m.vehicles }

// PlanUnits returns the plan-unit partition of the stops.
func (m *Model) PlanUnits() []PlanUnit { return m.planUnits }

// UnitOf returns the plan unit owning the given stop index.
func (m *Model) UnitOf(stop int) int { return m.unitOfStop[stop] }

// DistanceMatrix returns the registered matrix, or nil.
func (m *Model) DistanceMatrix() *DistanceMatrix { return m.matrix }

// Graph returns the compact travel graph built over the distance matrix, or
// nil when the model has no matrix.
func (m *Model) Graph() *graph.Graph[int] { return m.travel }

// Constraints returns the registered constraints.
func (m *Model) Constraints() []Constraint { return m.constraints }

// Expressions returns the registered expressions.
func (m *Model) Expressions() []Expression { return m.expressions }

// LegCost is the travel cost between two stops. With a matrix it prefers the
// direct entry and falls back to a shortest-path search over the travel graph
// when the direct entry is absent (NaN or infinite); without a matrix it uses
// the haversine distance between the stop locations. ok is false when the two
// stops are not connected at all.
func (m *Model) LegCost(from, to int) (float64, bool) {
	if from == to {
		return 0, true
	}
	if m.matrix == nil {
		a, b := m.stops[from].Location, m.stops[to].Location
		return haversineMeters(a.Lat, a.Lon, b.Lat, b.Lon), true
	}
	if d := m.matrix.At(from, to); isFiniteCost(d) {
		return d, true
	}
	path, ok := graph.ShortestPath(m.travel, from, to)
	if !ok {
		return 0, false
	}
	w, ok := graph.PathWeight(m.travel, path, graph.SumWeights)
	return w, ok
}

func isFiniteCost(d float64) bool {
	return !math.IsNaN(d) && !math.IsInf(d, 0) && d >= 0
}

// ModelBuilder accumulates a problem definition and validates it into an
// immutable Model.
type ModelBuilder struct {
	stops       []model.Stop
	vehicles    []model.Vehicle
	matrix      *DistanceMatrix
	objectives  []weightedObjective
	constraints []Constraint
	expressions []Expression
}

// NewModelBuilder returns an empty builder.
func NewModelBuilder() *ModelBuilder { return &ModelBuilder{} }

// Stop registers a stop. Order is significant: it fixes the stop's index.
func (b *ModelBuilder) Stop(s model.Stop) *ModelBuilder {
	b.stops = append(b.stops, s)
	return b
}

// Vehicle registers a vehicle.
func (b *ModelBuilder) Vehicle(v model.Vehicle) *ModelBuilder {
	b.vehicles = append(b.vehicles, v)
	return b
}

// DistanceMatrix registers the pairwise travel cost source.
func (b *ModelBuilder) DistanceMatrix(m *DistanceMatrix) *ModelBuilder {
	b.matrix = m
	return b
}

// Objective registers a scored criterion with its weight in the solution
// value.
func (b *ModelBuilder) Objective(o Objective, weight float64) *ModelBuilder {
	b.objectives = append(b.objectives, weightedObjective{objective: o, weight: weight})
	return b
}

// Constraint registers a feasibility check applied to every plan assignment.
func (b *ModelBuilder) Constraint(c Constraint) *ModelBuilder {
	b.constraints = append(b.constraints, c)
	return b
}

// Expression registers a reusable computed value.
func (b *ModelBuilder) Expression(e Expression) *ModelBuilder {
	b.expressions = append(b.expressions, e)
	return b
}

// Build validates the accumulated definition and returns the immutable Model.
// All malformed input surfaces here as a wrapped sentinel error; Build never
// panics on bad input.
func (b *ModelBuilder) Build() (*Model, error) {
	byID := make(map[string]int, len(b.stops))
	stops := make([]Stop, 0, len(b.stops))
	for i, in := range b.stops {
		if _, dup := byID[in.ID]; dup {
			return nil, fmt.Errorf("%w: stop %q", ErrDuplicateStop, in.ID)
		}
		byID[in.ID] = i
		stops = append(stops, Stop{
			ID:       in.ID,
			Index:    i,
			Location: Location{Lat: in.Location.Lat, Lon: in.Location.Lon},
			Quantity: in.Quantity,
			Window:   in.StartTimeWindows,
		})
	}

	for i, in := range b.stops {
		if len(in.Precedes) > 1 {
			return nil, fmt.Errorf("%w: stop %q precedes %d stops", ErrAmbiguousPrecedence, in.ID, len(in.Precedes))
		}
		for _, target := range in.Precedes {
			ti, ok := byID[target]
			if !ok {
				return nil, fmt.Errorf("%w: stop %q precedes %q", ErrUnknownStop, in.ID, target)
			}
			stops[i].Precedes = append(stops[i].Precedes, ti)
		}
	}

	vehicles := make([]Vehicle, 0, len(b.vehicles))
	seenVehicle := make(map[string]bool, len(b.vehicles))
	for i, in := range b.vehicles {
		if seenVehicle[in.ID] {
			return nil, fmt.Errorf("%w: vehicle %q", ErrDuplicateStop, in.ID)
		}
		seenVehicle[in.ID] = true
		v := Vehicle{
			ID:       in.ID,
			Index:    i,
			Capacity: in.Capacity,
			Speed:    in.Speed,
		}
		for _, is := range in.InitialStops {
			si, ok := byID[is.ID]
			if !ok {
				return nil, fmt.Errorf("%w: vehicle %q initial stop %q", ErrUnknownStop, in.ID, is.ID)
			}
			v.InitialStops = append(v.InitialStops, si)
		}
		vehicles = append(vehicles, v)
	}

	if b.matrix != nil {
		if b.matrix.Len() != len(stops) {
			return nil, fmt.Errorf("%w: %d rows for %d stops", ErrBadDistanceMatrix, b.matrix.Len(), len(stops))
		}
		for i, row := range b.matrix.cells {
			if len(row) != len(stops) {
				return nil, fmt.Errorf("%w: row %d has %d columns for %d stops", ErrBadDistanceMatrix, i, len(row), len(stops))
			}
		}
	}

	units, unitOf := buildPlanUnits(stops)

	m := &Model{
		stops:       stops,
		vehicles:    vehicles,
		planUnits:   units,
		unitOfStop:  unitOf,
		matrix:      b.matrix,
		objectives:  b.objectives,
		constraints: b.constraints,
		expressions: b.expressions,
	}
	if b.matrix != nil {
		m.travel = buildTravelGraph(stops, b.matrix)
	}
	return m, nil
}

// buildPlanUnits partitions the stops into plan units with a claim scan:
// each unclaimed stop opens a unit, and its single precedence target joins
// the unit when still unclaimed. Membership covers every stop exactly once.
func buildPlanUnits(stops []Stop) ([]PlanUnit, []int) {
	claimed := make([]bool, len(stops))
	unitOf := make([]int, len(stops))
	var units []PlanUnit
	for i := range stops {
		if claimed[i] {
			continue
		}
		unit := PlanUnit{Index: len(units), Stops: []int{i}}
		claimed[i] = true
		unitOf[i] = unit.Index
		if len(stops[i].Precedes) == 1 {
			target := stops[i].Precedes[0]
			if !claimed[target] {
				unit.Stops = append(unit.Stops, target)
				claimed[target] = true
				unitOf[target] = unit.Index
			}
		}
		units = append(units, unit)
	}
	return units, unitOf
}

// buildTravelGraph lifts the finite matrix entries into a compact weighted
// digraph with one node per stop, so leg costs with missing direct entries
// can be answered by shortest-path search.
func buildTravelGraph(stops []Stop, matrix *DistanceMatrix) *graph.Graph[int] {
	payload := make([]int, len(stops))
	for i := range payload {
		payload[i] = i
	}
	g := graph.New(payload)
	for from := range stops {
		for to := range stops {
			if from == to {
				continue
			}
			if d := matrix.At(from, to); isFiniteCost(d) {
				_ = g.AddEdge(graph.Weighted(from, to, d))
			}
		}
	}
	return g
}

// FromInput maps the wire schema into a builder preloaded with the standard
// objectives and constraints: unplanned work dominates the value, distance
// breaks ties, and capacity plus precedence gate every insertion.
func FromInput(in model.Input) *ModelBuilder {
	b := NewModelBuilder()
	for _, s := range in.Stops {
		b.Stop(s)
	}
	for _, v := range in.Vehicles {
		b.Vehicle(v)
	}
	if in.DistanceMatrix != nil {
		b.DistanceMatrix(NewDistanceMatrix(in.DistanceMatrix))
	}
	b.Objective(UnplannedObjective{}, unplannedPenalty)
	b.Objective(DistanceObjective{}, 1)
	b.Constraint(CapacityConstraint{})
	b.Constraint(PrecedenceConstraint{})
	b.Expression(DistanceExpression{})
	return b
}

func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371000.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}
