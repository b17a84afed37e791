package solver

import (
	"errors"
	"testing"

	"routesolver/internal/model"
)

func testInput() model.Input {
	return model.Input{
		Stops: []model.Stop{
			{ID: "p1", Precedes: []string{"d1"}, Quantity: map[string]float64{"box": 1}, Location: model.Location{Lat: 0, Lon: 0}},
			{ID: "d1", Quantity: map[string]float64{"box": -1}, Location: model.Location{Lat: 0, Lon: 1}},
			{ID: "p2", Precedes: []string{"d2"}, Quantity: map[string]float64{"box": 1}, Location: model.Location{Lat: 1, Lon: 0}},
			{ID: "d2", Quantity: map[string]float64{"box": -1}, Location: model.Location{Lat: 1, Lon: 1}},
		},
		Vehicles: []model.Vehicle{
			{ID: "v1", Capacity: map[string]float64{"box": 2}, Speed: 10},
			{ID: "v2", Capacity: map[string]float64{"box": 2}, Speed: 10},
		},
		DistanceMatrix: [][]float64{
			{0, 1, 2, 3},
			{1, 0, 2, 2},
			{2, 2, 0, 1},
			{3, 2, 1, 0},
		},
	}
}

func buildTestModel(t *testing.T) *Model {
	t.Helper()
	m, err := FromInput(testInput()).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return m
}

func TestPlanUnitPairing(t *testing.T) {
	m := buildTestModel(t)
	units := m.PlanUnits()
	if len(units) != 2 {
		t.Fatalf("plan units: got %d, want 2", len(units))
	}
	// p1 (index 0) and d1 (index 1) pair up
	if len(units[0].Stops) != 2 || units[0].Stops[0] != 0 || units[0].Stops[1] != 1 {
		t.Fatalf("unit 0 stops: %v", units[0].Stops)
	}
	if m.UnitOf(0) != m.UnitOf(1) {
		t.Fatal("pickup and delivery must share a plan unit")
	}
	// linked pair quantities conserve
	sum := 0.0
	for _, si := range units[0].Stops {
		sum += m.Stops()[si].Quantity["box"]
	}
	if sum != 0 {
		t.Fatalf("pair quantity sum: got %f, want 0", sum)
	}
}

func TestPlanUnitsPartitionAllStops(t *testing.T) {
	m := buildTestModel(t)
	seen := map[int]int{}
	for _, u := range m.PlanUnits() {
		for _, si := range u.Stops {
			seen[si]++
		}
	}
	for i := range m.Stops() {
		if seen[i] != 1 {
			t.Fatalf("stop %d claimed %d times", i, seen[i])
		}
	}
}

func TestAmbiguousPrecedenceRejected(t *testing.T) {
	in := testInput()
	in.Stops[0].Precedes = []string{"d1", "d2"}
	_, err := FromInput(in).Build()
	if !errors.Is(err, ErrAmbiguousPrecedence) {
		t.Fatalf("got %v, want ErrAmbiguousPrecedence", err)
	}
}

func TestDanglingPrecedenceRejected(t *testing.T) {
	in := testInput()
	in.Stops[0].Precedes = []string{"nope"}
	_, err := FromInput(in).Build()
	if !errors.Is(err, ErrUnknownStop) {
		t.Fatalf("got %v, want ErrUnknownStop", err)
	}
}

func TestDanglingInitialStopRejected(t *testing.T) {
	in := testInput()
	in.Vehicles[0].InitialStops = []model.InitialStop{{ID: "nope"}}
	_, err := FromInput(in).Build()
	if !errors.Is(err, ErrUnknownStop) {
		t.Fatalf("got %v, want ErrUnknownStop", err)
	}
}

func TestBadDistanceMatrixRejected(t *testing.T) {
	in := testInput()
	in.DistanceMatrix = [][]float64{{0, 1}, {1, 0}}
	_, err := FromInput(in).Build()
	if !errors.Is(err, ErrBadDistanceMatrix) {
		t.Fatalf("got %v, want ErrBadDistanceMatrix", err)
	}

	in = testInput()
	in.DistanceMatrix[2] = []float64{0, 1}
	_, err = FromInput(in).Build()
	if !errors.Is(err, ErrBadDistanceMatrix) {
		t.Fatalf("ragged matrix: got %v, want ErrBadDistanceMatrix", err)
	}
}

func TestDuplicateStopRejected(t *testing.T) {
	in := testInput()
	in.Stops[1].ID = "p1"
	_, err := FromInput(in).Build()
	if !errors.Is(err, ErrDuplicateStop) {
		t.Fatalf("got %v, want ErrDuplicateStop", err)
	}
}

func TestLegCostPrefersShortestPathOverMissingEntry(t *testing.T) {
	in := testInput()
	// -1 marks an absent direct leg
	in.DistanceMatrix = [][]float64{
		{0, 1, 100, -1},
		{-1, 0, 1, -1},
		{2, -1, 0, -1},
		{-1, -1, -1, 0},
	}
	m, err := FromInput(in).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// direct entry present
	d, ok := m.LegCost(0, 1)
	if !ok || d != 1 {
		t.Fatalf("direct leg: got (%f,%v)", d, ok)
	}
	// 0->3 has no entry and no path
	if _, ok := m.LegCost(0, 3); ok {
		t.Fatal("unreachable leg must report !ok")
	}
	// force the detour: blank the direct 0->2 entry
	in.DistanceMatrix[0][2] = -1
	m, err = FromInput(in).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	d, ok = m.LegCost(0, 2)
	if !ok || d != 2 {
		t.Fatalf("detour leg via 1: got (%f,%v), want (2,true)", d, ok)
	}
}

func TestLegCostHaversineFallback(t *testing.T) {
	in := testInput()
	in.DistanceMatrix = nil
	m, err := FromInput(in).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.Graph() != nil {
		t.Fatal("no matrix, no travel graph")
	}
	d, ok := m.LegCost(0, 1)
	if !ok || d <= 0 {
		t.Fatalf("haversine leg: got (%f,%v)", d, ok)
	}
}
