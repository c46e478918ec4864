package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the service.
type Metrics struct {
	SolvesTotal      *prometheus.CounterVec
	SolveSeconds     prometheus.Histogram
	SolveNodes       prometheus.Histogram
	PuzzlesGenerated prometheus.Counter
}

// Solve outcomes used as label values.
const (
	OutcomeSolved        = "solved"
	OutcomeUnsatisfiable = "unsatisfiable"
	OutcomeInvalid       = "invalid"
	OutcomeIncomplete    = "incomplete"
)

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		SolvesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gridsolver_solves_total",
			Help: "Solve requests by outcome.",
		}, []string{"outcome"}),
		SolveSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridsolver_solve_duration_seconds",
			Help:    "Wall-clock duration of solve calls.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		SolveNodes: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridsolver_solve_nodes",
			Help:    "Branch attempts per solve call.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		}),
		PuzzlesGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gridsolver_puzzles_generated_total",
			Help: "Puzzles produced by the generator.",
		}),
	}
}
