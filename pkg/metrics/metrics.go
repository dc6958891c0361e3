package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultRegistry is the registry exposed on /metrics.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(
		TurnsTotal, TurnDuration, CollaboratorFailuresTotal, UploadsTotal, LLMRequestsTotal,
		collectors.NewGoCollector(),
	)
}

// TurnsTotal counts conversation turns by intent and outcome.
var TurnsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "spendly_turns_total",
		Help: "Conversation turns handled, by intent and outcome.",
	},
	[]string{"intent", "outcome"}, // ok | degraded | rejected | failed
)

// TurnDuration is the wall time of a full turn, lock wait included.
var TurnDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "spendly_turn_duration_seconds",
		Help:    "Turn latency in seconds.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"intent"},
)

// CollaboratorFailuresTotal counts degraded calls to the generator, extractor or parser.
var CollaboratorFailuresTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "spendly_collaborator_failures_total",
		Help: "Collaborator calls that failed and were degraded.",
	},
	[]string{"collaborator"}, // generator | extractor | parser
)

// UploadsTotal counts document uploads by outcome.
var UploadsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "spendly_uploads_total",
		Help: "Document uploads, by outcome.",
	},
	[]string{"outcome"}, // ok | rejected | failed
)

// LLMRequestsTotal counts provider calls made by the fallback manager.
var LLMRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "spendly_llm_requests_total",
		Help: "LLM provider calls, by provider and outcome.",
	},
	[]string{"provider", "outcome"}, // ok | failed
)

// Turn outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeDegraded = "degraded"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Collaborator labels.
const (
	CollaboratorGenerator = "generator"
	CollaboratorExtractor = "extractor"
	CollaboratorParser    = "parser"
)

// Handler serves DefaultRegistry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{})
}
