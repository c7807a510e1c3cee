package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for remap
// operations.
type Metrics struct {
	RecordsLoaded  *prometheus.CounterVec // labels: store={template,source}
	SlotsAssembled prometheus.Counter
	RemapFailures  *prometheus.CounterVec // labels: kind={no_match,ambiguous_match,missing_template,structural_mismatch,io}
	RemapDuration  prometheus.Histogram
	RemapRunning   prometheus.Gauge
}

// NewMetrics creates and registers all remap metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grib_remap",
			Name:      "records_loaded_total",
			Help:      "Total grid messages decoded, by store.",
		}, []string{"store"}),
		SlotsAssembled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "grib_remap",
			Name:      "slots_assembled_total",
			Help:      "Total template slots populated from the source store.",
		}),
		RemapFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grib_remap",
			Name:      "failures_total",
			Help:      "Remap operation failures by error kind.",
		}, []string{"kind"}),
		RemapDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "grib_remap",
			Name:      "operation_duration_seconds",
			Help:      "Duration of a complete load-assemble-write operation.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		RemapRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "grib_remap",
			Name:      "operation_running",
			Help:      "1 while a remap operation is in progress, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.RecordsLoaded,
		m.SlotsAssembled,
		m.RemapFailures,
		m.RemapDuration,
		m.RemapRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsLoaded:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "grib_remap", Name: "records_loaded_total"}, []string{"store"}),
		SlotsAssembled: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "grib_remap", Name: "slots_assembled_total"}),
		RemapFailures:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "grib_remap", Name: "failures_total"}, []string{"kind"}),
		RemapDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "grib_remap", Name: "operation_duration_seconds"}),
		RemapRunning:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "grib_remap", Name: "operation_running"}),
	}
}
