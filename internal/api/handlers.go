package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"routesolver/internal/buildinfo"
	"routesolver/internal/metrics"
	"routesolver/internal/model"
	"routesolver/internal/solver"
	"routesolver/internal/store"
)

// SolveHandler handles POST /v1/solve. The solve runs synchronously within
// the request; progress events are published to the broker under the solve id
// so websocket subscribers can follow along.
func (s *Server) SolveHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req model.SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.SolveRequests.WithLabelValues("invalid").Inc()
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	m, err := solver.FromInput(req.Problem).Build()
	if err != nil {
		metrics.SolveRequests.WithLabelValues("invalid").Inc()
		writeProblem(w, http.StatusBadRequest, "Invalid problem", err.Error(), r.URL.Path)
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}
	seed := req.Options.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	opts := solver.SolverOptions{
		MaxIterations: s.Config.Solver.MaxIterations,
		ProgressEvery: s.Config.Solver.ProgressEvery,
	}
	if req.Options.MaxIterations > 0 {
		opts.MaxIterations = req.Options.MaxIterations
	}

	b := solver.NewSolverBuilder().
		Model(m).
		Options(opts).
		Random(solver.Seeded(seed)).
		OnProgress(func(p solver.Progress) {
			s.Broker.Publish(id, model.ProgressEvent{SolveID: id, Iteration: p.Iteration, BestValue: p.BestValue})
		})
	for _, op := range solver.DefaultOperators() {
		b.Operator(op)
	}
	sv, err := b.Build()
	if err != nil {
		metrics.SolveRequests.WithLabelValues("error").Inc()
		writeProblem(w, http.StatusInternalServerError, "Solver init failed", err.Error(), r.URL.Path)
		return
	}

	start := time.Now()
	sol, err := sv.Solve(r.Context())
	metrics.SolveDuration.Observe(time.Since(start).Seconds())
	metrics.SolverIterations.Add(float64(sv.IterationCount()))
	st := sv.Stats()
	for name, n := range st.OperatorRuns {
		metrics.OperatorExecutions.WithLabelValues(name).Add(float64(n))
	}
	metrics.SolverImprovements.Add(float64(st.Improvements))
	if err != nil {
		metrics.SolveRequests.WithLabelValues("canceled").Inc()
		writeProblem(w, http.StatusServiceUnavailable, "Solve interrupted", err.Error(), r.URL.Path)
		return
	}

	res := resultFromSolution(id, seed, sv.IterationCount(), sol)
	if err := s.Store.SaveResult(r.Context(), res); err != nil {
		metrics.SolveRequests.WithLabelValues("error").Inc()
		writeProblem(w, http.StatusInternalServerError, "Save result failed", err.Error(), r.URL.Path)
		return
	}
	s.Broker.Publish(id, model.ProgressEvent{SolveID: id, Iteration: res.Iterations, BestValue: res.Value, Done: true})
	metrics.SolveRequests.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, res)
}

func resultFromSolution(id string, seed uint64, iterations int, sol *solver.Solution) model.SolveResult {
	m := sol.Model()
	routes := []model.VehicleRoute{}
	for _, v := range sol.Vehicles() {
		stops := make([]string, 0, len(v.Route))
		for _, si := range v.Route {
			stops = append(stops, m.Stops()[si].ID)
		}
		routes = append(routes, model.VehicleRoute{
			VehicleID: m.Vehicles()[v.Index].ID,
			Stops:     stops,
			Cost:      v.Cost,
		})
	}
	unplanned := []model.UnplannedUnit{}
	for _, u := range sol.Unplanned() {
		unit := m.PlanUnits()[u.Unit]
		stops := make([]string, 0, len(unit.Stops))
		for _, si := range unit.Stops {
			stops = append(stops, m.Stops()[si].ID)
		}
		unplanned = append(unplanned, model.UnplannedUnit{Stops: stops, Reason: u.Reason})
	}
	return model.SolveResult{
		ID:         id,
		Value:      sol.Value(),
		Iterations: iterations,
		Seed:       seed,
		Routes:     routes,
		Unplanned:  unplanned,
		CreatedAt:  time.Now().UTC(),
	}
}

// SolutionsIndexHandler handles GET /v1/solutions
func (s *Server) SolutionsIndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	cursor := r.URL.Query().Get("cursor")
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be a positive integer", r.URL.Path)
			return
		}
		limit = n
	}
	items, next, err := s.Store.ListResults(r.Context(), cursor, limit)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "List solutions failed", err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "nextCursor": next})
}

// SolutionByIDHandler handles GET /v1/solutions/{id}
func (s *Server) SolutionByIDHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/v1/solutions/")
	if id == "" || strings.Contains(id, "/") {
		writeProblem(w, http.StatusNotFound, "Not Found", "", r.URL.Path)
		return
	}
	res, err := s.Store.GetResult(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Solution not found", "", r.URL.Path)
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Get solution failed", err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "build": buildinfo.Info()})
}

func (s *Server) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.Store.(interface{ Ping(ctx context.Context) error }); ok {
		if err := p.Ping(r.Context()); err != nil {
			writeProblem(w, http.StatusServiceUnavailable, "Store not ready", err.Error(), r.URL.Path)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
