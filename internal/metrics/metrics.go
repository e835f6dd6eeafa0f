package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors exported on /metrics
type Metrics struct {
	Registry        *prometheus.Registry
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	Recommendations *prometheus.CounterVec
}

// New registers the application collectors plus the go/process collectors
// on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recipeshare",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "recipeshare",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		Recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recipeshare",
			Name:      "recommendation_transitions_total",
			Help:      "Recommend/unrecommend calls by action and whether state changed.",
		}, []string{"action", "result"}),
	}

	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.Recommendations,
	)
	return m
}

// ObserveRecommendation counts one recommend/unrecommend call. A nil
// receiver is a no-op so services can run without metrics.
func (m *Metrics) ObserveRecommendation(action string, changed bool) {
	if m == nil {
		return
	}
	result := "noop"
	if changed {
		result = "applied"
	}
	m.Recommendations.WithLabelValues(action, result).Inc()
}
