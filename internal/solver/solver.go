package solver

import "context"

// SolverOptions configure a solve run.
type SolverOptions struct {
	// MaxIterations bounds the search loop. Zero is valid and returns the
	// seed solution untouched.
	MaxIterations int
	// ProgressEvery invokes the progress callback every N iterations.
	// Zero disables progress reporting.
	ProgressEvery int
}

// DefaultSolverOptions returns the stock configuration.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{MaxIterations: 100}
}

// Progress is a snapshot of the search handed to the progress callback.
type Progress struct {
	Iteration int
	BestValue float64
}

// Stats aggregates what happened during a solve run.
type Stats struct {
	Iterations      int
	Improvements    int
	OperatorRuns    map[string]int
	InfeasibleSkips int
}

// Solver owns the model, the operator set, the entropy source and the current
// best solution, and runs the destroy/repair iteration loop. A Solver is
// single-use and not safe for concurrent access; the Model it reads is
// immutable and may be shared.
type Solver struct {
	model          *Model
	operators      []Operator
	options        SolverOptions
	solution       *Solution
	random         *Random
	onProgress     func(Progress)
	iterationCount int
	stats          Stats
}

// IterationCount returns how many iterations have run.
func (s *Solver) IterationCount() int { return s.iterationCount }

// Solution returns the current best solution, or nil before Solve seeded one.
func (s *Solver) Solution() *Solution { return s.solution }

// Operators returns the registered operators in registration order.
func (s *Solver) Operators() []Operator { return s.operators }

// Stats returns the run statistics gathered so far.
func (s *Solver) Stats() Stats { return s.stats }

// Solve runs the search to completion and returns the best solution seen.
// Each iteration asks every operator, in registration order and gated by its
// chance, for a candidate plan, and keeps the better of the current and
// candidate solutions. The context is checked once per iteration; on
// cancellation the best solution so far is returned along with ctx.Err().
func (s *Solver) Solve(ctx context.Context) (*Solution, error) {
	if s.solution == nil {
		s.solution = NewSolution(s.model)
	}
	for s.iterationCount < s.options.MaxIterations {
		if err := ctx.Err(); err != nil {
			return s.solution, err
		}
		s.executeOperators()
		s.iterationCount++
		s.stats.Iterations = s.iterationCount
		if s.onProgress != nil && s.options.ProgressEvery > 0 && s.iterationCount%s.options.ProgressEvery == 0 {
			s.onProgress(Progress{Iteration: s.iterationCount, BestValue: s.solution.Value()})
		}
	}
	return s.solution, nil
}

func (s *Solver) executeOperators() {
	solution := s.solution
	for _, op := range s.operators {
		if !s.random.Chance(op.Chance(), 1.0) {
			continue
		}
		plan := op.Execute(s.model, solution, s.random)
		s.stats.OperatorRuns[op.Name()]++
		candidate := solution.Apply(&plan)
		if candidate.Value() < solution.Value() {
			s.stats.Improvements++
		}
		solution = solution.Best(candidate)
	}
	s.stats.InfeasibleSkips = solution.InfeasibleSkips()
	s.solution = solution
}

// SolverBuilder assembles a Solver.
type SolverBuilder struct {
	solver Solver
}

// NewSolverBuilder returns a builder with default options and a wall-clock
// seeded random source.
func NewSolverBuilder() *SolverBuilder {
	return &SolverBuilder{solver: Solver{
		options: DefaultSolverOptions(),
		random:  NewRandom(),
		stats:   Stats{OperatorRuns: map[string]int{}},
	}}
}

// Model attaches the problem instance. Required.
func (b *SolverBuilder) Model(m *Model) *SolverBuilder {
	b.solver.model = m
	return b
}

// Operator registers an operator; execution follows registration order.
func (b *SolverBuilder) Operator(op Operator) *SolverBuilder {
	b.solver.operators = append(b.solver.operators, op)
	return b
}

// Options overrides the solve options.
func (b *SolverBuilder) Options(opts SolverOptions) *SolverBuilder {
	b.solver.options = opts
	return b
}

// Random replaces the entropy source, typically with a fixed seed for
// reproducible runs.
func (b *SolverBuilder) Random(r *Random) *SolverBuilder {
	b.solver.random = r
	return b
}

// Solution seeds the search with an existing solution instead of the model
// seed.
func (b *SolverBuilder) Solution(s *Solution) *SolverBuilder {
	b.solver.solution = s
	return b
}

// OnProgress registers a callback fired every ProgressEvery iterations.
func (b *SolverBuilder) OnProgress(fn func(Progress)) *SolverBuilder {
	b.solver.onProgress = fn
	return b
}

// Build finalizes the solver.
func (b *SolverBuilder) Build() (*Solver, error) {
	if b.solver.model == nil {
		return nil, ErrNoModel
	}
	s := b.solver
	return &s, nil
}

// DefaultOperators is the stock operator set used when callers do not supply
// their own: repair aggressively, destroy a little, rarely reset.
func DefaultOperators() []Operator {
	return []Operator{
		RepairNearest{Params: OperatorParameters{Value: 2, Chance: 1.0}},
		RepairRandom{Params: OperatorParameters{Value: 1, Chance: 0.5}},
		DestroyRandom{Params: OperatorParameters{Value: 1, Chance: 0.3}},
		DestroyWorst{Params: OperatorParameters{Value: 1, Chance: 0.2}},
		ResetPartial{Params: OperatorParameters{Value: 1, Chance: 0.05}},
		ResetFull{Params: OperatorParameters{Value: 1, Chance: 0.01}},
	}
}
