// Package metrics exposes Prometheus counters for the emotion detector.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "emotion_detector"

// Detection outcomes.
const (
	OutcomeRemote      = "remote"
	OutcomeInvalid     = "invalid"
	OutcomeRejected    = "rejected"
	OutcomeSimulated   = "simulated"
	OutcomeUnavailable = "unavailable"
)

// Metrics holds the collectors registered on its own registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	detections      *prometheus.CounterVec
	classifyLatency *prometheus.HistogramVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		detections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detections_total",
			Help:      "Emotion detections by outcome.",
		}, []string{"outcome"}),
		classifyLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classify_duration_seconds",
			Help:      "Latency of outbound classifier calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"classifier"}),
	}

	registry.MustRegister(m.detections, m.classifyLatency)
	return m
}

// ObserveDetection counts one detection outcome.
func (m *Metrics) ObserveDetection(outcome string) {
	if m == nil {
		return
	}
	m.detections.WithLabelValues(outcome).Inc()
}

// ObserveClassify records the duration of a classifier call.
func (m *Metrics) ObserveClassify(classifier string, d time.Duration) {
	if m == nil {
		return
	}
	m.classifyLatency.WithLabelValues(classifier).Observe(d.Seconds())
}

// Detections returns the counter for outcome, for assertions in tests.
func (m *Metrics) Detections(outcome string) prometheus.Counter {
	return m.detections.WithLabelValues(outcome)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
