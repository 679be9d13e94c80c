package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Analyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webintel_analyses_total",
			Help: "Total number of website analyses by outcome",
		},
		[]string{"outcome"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webintel_cache_hits_total",
			Help: "Cache hits by record kind",
		},
		[]string{"kind"},
	)

	Extractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webintel_extractions_total",
			Help: "Content extractions by extractor and outcome",
		},
		[]string{"extractor", "outcome"},
	)

	Answers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webintel_answers_total",
			Help: "Answered questions by source",
		},
		[]string{"source"},
	)

	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webintel_search_requests_total",
			Help: "Web search requests by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webintel_llm_request_duration_seconds",
			Help:    "Duration of completion requests in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"provider"},
	)
)

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeDegraded = "degraded"
	OutcomeEmpty    = "empty"
	OutcomeCached   = "cached"
)

// Outcome returns OutcomeOK for a nil error and OutcomeError otherwise.
func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
