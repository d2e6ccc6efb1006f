package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the consumer's Prometheus instruments on a private registry.
type Metrics struct {
	MessagesConsumed prometheus.Counter
	DecodeFailures   *prometheus.CounterVec
	PointsPlotted    prometheus.Counter
	WindowLength     prometheus.Gauge

	registry *prometheus.Registry
}

// New creates and registers all instruments.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "buzz_messages_consumed_total",
			Help: "Envelopes pulled from the message source.",
		}),
		DecodeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "buzz_decode_failures_total",
			Help: "Payloads rejected by the decoder, by failure kind.",
		}, []string{"kind"}),
		PointsPlotted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "buzz_points_plotted_total",
			Help: "Sentiment points appended to the rolling window.",
		}),
		WindowLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "buzz_window_length",
			Help: "Current number of points in the rolling window.",
		}),
		registry: registry,
	}

	registry.MustRegister(
		m.MessagesConsumed,
		m.DecodeFailures,
		m.PointsPlotted,
		m.WindowLength,
		collectors.NewGoCollector(),
	)

	return m
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
