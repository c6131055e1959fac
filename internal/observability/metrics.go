package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// assessment service.
type Metrics struct {
	RequestsConsumed     prometheus.Counter
	AssessmentsPublished prometheus.Counter
	TransformErrors      prometheus.Counter
	PipelineRunning      prometheus.Gauge

	// Assessment metrics.
	AssessmentsTotal   *prometheus.CounterVec // labels: level={HIGH,MEDIUM,LOW}
	SourcesDegraded    *prometheus.CounterVec // labels: source={satellite,weather,terrain,historical}
	AssessmentDuration prometheus.Histogram

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Historical store metrics.
	HistoryLookups *prometheus.CounterVec // labels: result={hit,miss,error}
	HistoryEnabled prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RequestsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_risk",
			Name:      "requests_consumed_total",
			Help:      "Total assessment requests read from the source topic.",
		}),
		AssessmentsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_risk",
			Name:      "assessments_published_total",
			Help:      "Total assessments written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_risk",
			Name:      "transform_errors_total",
			Help:      "Total requests rejected before an assessment was produced.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flood_risk",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		AssessmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_risk",
			Name:      "assessments_total",
			Help:      "Completed assessments by risk level.",
		}, []string{"level"}),
		SourcesDegraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_risk",
			Name:      "sources_degraded_total",
			Help:      "Supplied sources dropped for missing required fields.",
		}, []string{"source"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flood_risk",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of a single risk assessment.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flood_risk",
			Name:      "batch_size",
			Help:      "Number of requests per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flood_risk",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-assess-publish cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		HistoryLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_risk",
			Name:      "history_lookups_total",
			Help:      "Historical flood-frequency store lookups by result.",
		}, []string{"result"}),
		HistoryEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flood_risk",
			Name:      "history_enabled",
			Help:      "1 when the store-backed historical model is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.RequestsConsumed,
		m.AssessmentsPublished,
		m.TransformErrors,
		m.PipelineRunning,
		m.AssessmentsTotal,
		m.SourcesDegraded,
		m.AssessmentDuration,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.HistoryLookups,
		m.HistoryEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RequestsConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_risk", Name: "requests_consumed_total"}),
		AssessmentsPublished:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_risk", Name: "assessments_published_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_risk", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "flood_risk", Name: "pipeline_running"}),
		AssessmentsTotal:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flood_risk", Name: "assessments_total"}, []string{"level"}),
		SourcesDegraded:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flood_risk", Name: "sources_degraded_total"}, []string{"source"}),
		AssessmentDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "flood_risk", Name: "assessment_duration_seconds"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "flood_risk", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "flood_risk", Name: "batch_processing_duration_seconds"}),
		HistoryLookups:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flood_risk", Name: "history_lookups_total"}, []string{"result"}),
		HistoryEnabled:          prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "flood_risk", Name: "history_enabled"}),
	}
}
