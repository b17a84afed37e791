package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the API
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// SolveRequests counts solve submissions by outcome
	SolveRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "solve_requests_total", Help: "Solve requests by outcome."},
		[]string{"outcome"},
	)
	// SolverIterations counts search iterations across all solves
	SolverIterations = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "solver_iterations_total", Help: "Search iterations across all solve runs."},
	)
	// OperatorExecutions counts operator runs by operator name
	OperatorExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "operator_executions_total", Help: "Operator executions by operator."},
		[]string{"operator"},
	)
	// SolverImprovements counts iterations that improved the retained solution
	SolverImprovements = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "solver_improvements_total", Help: "Accepted improving candidate solutions."},
	)
	// SolveDuration tracks end-to-end solve durations in seconds
	SolveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "solve_duration_seconds", Help: "End-to-end solve duration in seconds.", Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60}},
	)
)

// RegisterDefault registers collectors to the dedicated registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(SolveRequests)
		Registry.MustRegister(SolverIterations)
		Registry.MustRegister(OperatorExecutions)
		Registry.MustRegister(SolverImprovements)
		Registry.MustRegister(SolveDuration)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
