package solver

// Expression is a reusable computed value over a candidate solution, shared
// by objectives and callers that want the raw number without a weight.
type Expression interface {
	Name() string
	Compute(m *Model, s *Solution, p *Plan) float64
}

// DistanceExpression exposes the total route distance in meters.
type DistanceExpression struct{}

func (DistanceExpression) Name() string { return "distance_meters" }

func (DistanceExpression) Compute(m *Model, s *Solution, p *Plan) float64 {
	return DistanceObjective{}.Compute(m, s, p)
}
