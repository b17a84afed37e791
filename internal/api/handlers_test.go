package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"routesolver/internal/config"
	"routesolver/internal/model"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Config{Solver: config.Solver{MaxIterations: 50, ProgressEvery: 10}}
	s, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}

func testProblem() model.Input {
	return model.Input{
		Stops: []model.Stop{
			{ID: "p1", Precedes: []string{"d1"}, Quantity: map[string]float64{"box": 1}},
			{ID: "d1", Quantity: map[string]float64{"box": -1}, Location: model.Location{Lat: 0, Lon: 1}},
		},
		Vehicles: []model.Vehicle{
			{ID: "v1", Capacity: map[string]float64{"box": 2}},
		},
		DistanceMatrix: [][]float64{{0, 1}, {1, 0}},
	}
}

func solveBody(t *testing.T, req model.SolveRequest) []byte {
	t.Helper()
	b, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestHealthReady(t *testing.T) {
	s := newTestServer(t)
	rr := httptest.NewRecorder()
	s.HealthHandler(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != 200 {
		t.Fatalf("health: got %d", rr.Code)
	}
	rr = httptest.NewRecorder()
	s.ReadyHandler(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rr.Code != 200 {
		t.Fatalf("ready: got %d", rr.Code)
	}
}

func TestSolveAndFetch(t *testing.T) {
	s := newTestServer(t)
	body := solveBody(t, model.SolveRequest{
		Problem: testProblem(),
		Options: model.SolveOptions{MaxIterations: 50, Seed: 7},
	})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/solve", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.SolveHandler(rr, req)
	if rr.Code != 200 {
		t.Fatalf("solve: got %d, body %s", rr.Code, rr.Body.String())
	}
	var res model.SolveResult
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.ID == "" || res.Iterations != 50 || res.Seed != 7 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(res.Unplanned) != 0 {
		t.Fatalf("one pair on one vehicle should plan fully: %+v", res.Unplanned)
	}

	// fetch by id
	rr = httptest.NewRecorder()
	s.SolutionByIDHandler(rr, httptest.NewRequest(http.MethodGet, "/v1/solutions/"+res.ID, nil))
	if rr.Code != 200 {
		t.Fatalf("get solution: %d", rr.Code)
	}

	// list
	rr = httptest.NewRecorder()
	s.SolutionsIndexHandler(rr, httptest.NewRequest(http.MethodGet, "/v1/solutions?limit=5", nil))
	if rr.Code != 200 {
		t.Fatalf("list solutions: %d", rr.Code)
	}
	var idx struct {
		Items []model.SolveResult `json:"items"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &idx); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(idx.Items) != 1 || idx.Items[0].ID != res.ID {
		t.Fatalf("list items: %+v", idx.Items)
	}
}

func TestSolveDeterministicWithSeed(t *testing.T) {
	s := newTestServer(t)
	run := func() float64 {
		body := solveBody(t, model.SolveRequest{
			Problem: testProblem(),
			Options: model.SolveOptions{MaxIterations: 30, Seed: 99},
		})
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/solve", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		s.SolveHandler(rr, req)
		if rr.Code != 200 {
			t.Fatalf("solve: %d", rr.Code)
		}
		var res model.SolveResult
		if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return res.Value
	}
	if run() != run() {
		t.Fatal("identical seed must produce identical value")
	}
}

func TestSolveRejectsInvalidJSON(t *testing.T) {
	s := newTestServer(t)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/solve", bytes.NewReader([]byte("{nope")))
	s.SolveHandler(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rr.Code)
	}
}

func TestSolveRejectsInvalidProblem(t *testing.T) {
	s := newTestServer(t)
	in := testProblem()
	in.Stops[0].Precedes = []string{"d1", "missing"}
	body := solveBody(t, model.SolveRequest{Problem: in})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/solve", bytes.NewReader(body))
	s.SolveHandler(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rr.Code)
	}
	var p Problem
	if err := json.Unmarshal(rr.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	if p.Status != http.StatusBadRequest || p.Title == "" {
		t.Fatalf("bad problem body: %+v", p)
	}
}

func TestSolutionNotFound(t *testing.T) {
	s := newTestServer(t)
	rr := httptest.NewRecorder()
	s.SolutionByIDHandler(rr, httptest.NewRequest(http.MethodGet, "/v1/solutions/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", rr.Code)
	}
}

func TestSolutionsIndexRejectsBadLimit(t *testing.T) {
	s := newTestServer(t)
	for _, limit := range []string{"5x", "abc", "0", "-3"} {
		rr := httptest.NewRecorder()
		s.SolutionsIndexHandler(rr, httptest.NewRequest(http.MethodGet, "/v1/solutions?limit="+limit, nil))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("limit=%q: got %d, want 400", limit, rr.Code)
		}
	}
}

func TestSolveMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	rr := httptest.NewRecorder()
	s.SolveHandler(rr, httptest.NewRequest(http.MethodGet, "/v1/solve", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("got %d, want 405", rr.Code)
	}
}
