// Package metrics holds the Prometheus collectors exported by the relay.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "oauthrelay"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeMiss    = "miss"
)

var (
	// FlowOperations counts begin/complete/refresh calls by outcome.
	// The outcome is "success" or the error kind in snake case.
	FlowOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "flow_operations_total",
		Help:      "Total number of relay flow operations grouped by outcome",
	}, []string{"operation", "outcome"})

	StoreOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_operations_total",
		Help:      "Total number of token store operations grouped by backend and outcome",
	}, []string{"backend", "operation", "outcome"})

	UpstreamRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of token endpoint requests grouped by grant type and outcome",
	}, []string{"grant_type", "outcome"})

	UpstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of token endpoint requests",
		Buckets:   prometheus.DefBuckets,
	}, []string{"grant_type"})

	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served grouped by route and status code",
	}, []string{"route", "code"})
)

// Registry is the registry all relay collectors are registered with.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		FlowOperations,
		StoreOperations,
		UpstreamRequests,
		UpstreamDuration,
		HTTPRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the relay registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
