// Package stats exposes Prometheus metrics
package stats

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "codetracker"

var (
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "The total number of requests sent to upstream APIs",
	}, []string{"upstream"})

	UpstreamFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_failures_total",
		Help:      "The total number of failed upstream requests",
	}, []string{"upstream"})

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_duration_seconds",
		Help:      "Upstream request duration",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"upstream"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Cache lookups by kind and result (hit or miss)",
	}, []string{"kind", "result"})

	SolutionLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "solution_lookups_total",
		Help:      "The total number of solution lookups",
	}, []string{"platform"})

	SolutionMatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "solution_matches_total",
		Help:      "The total number of videos matched to contests",
	}, []string{"platform"})
)

// ObserveUpstream records a single upstream round trip
func ObserveUpstream(upstream string, took time.Duration, err error) {
	UpstreamRequests.WithLabelValues(upstream).Inc()
	UpstreamDuration.WithLabelValues(upstream).Observe(took.Seconds())
	if err != nil {
		UpstreamFailures.WithLabelValues(upstream).Inc()
	}
}

func CacheHit(kind string) {
	CacheLookups.WithLabelValues(kind, "hit").Inc()
}

func CacheMiss(kind string) {
	CacheLookups.WithLabelValues(kind, "miss").Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
