package reduce

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("tilereduce/reduce")

var (
	// mergeTotal counts candidate outcomes by reduction kind and result.
	mergeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tilereduce_merge_total",
		Help: "Candidate merges by reduction kind and outcome",
	}, []string{"kind", "result"})

	// repairChainLength tracks the number of pairs each repair chain tried.
	repairChainLength = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tilereduce_repair_chain_length",
		Help:    "Pairs attempted per repair chain",
		Buckets: []float64{1, 2, 4, 8, 16, 32, 64},
	}, []string{"status"})

	// trialDuration tracks wall time per trial.
	trialDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tilereduce_trial_duration_seconds",
		Help:    "Trial duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 16), // 1ms to ~33s
	}, []string{"kind"})
)
