// Package observability holds the Prometheus metrics for index calculations.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "airindex"

// Metrics holds the Prometheus counters and histograms for the assessment service.
type Metrics struct {
	Calculations    *prometheus.CounterVec   // labels: standard, category
	Rejections      *prometheus.CounterVec   // labels: reason={invalid_input,unknown_pollutant,no_valid_input}
	OverallIndex    *prometheus.HistogramVec // labels: standard
	Confidence      *prometheus.CounterVec   // labels: level
	Interpretations *prometheus.CounterVec   // labels: category
}

// NewMetrics creates the metrics and registers them with reg. Tests pass a
// fresh prometheus.NewRegistry() to avoid duplicate registration panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Index calculations from raw concentrations by standard and resulting category.",
		}, []string{"standard", "category"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_inputs_total",
			Help:      "Calculations that could not produce an index, by reason.",
		}, []string{"reason"}),
		OverallIndex: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "overall_index",
			Help:      "Distribution of computed overall index values.",
			Buckets:   []float64{50, 100, 150, 200, 300, 400, 500},
		}, []string{"standard"}),
		Confidence: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "confidence_assessments_total",
			Help:      "Confidence assessments by level.",
		}, []string{"level"}),
		Interpretations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interpretations_total",
			Help:      "Interpretations of pre-computed indices by category.",
		}, []string{"category"}),
	}

	reg.MustRegister(
		m.Calculations,
		m.Rejections,
		m.OverallIndex,
		m.Confidence,
		m.Interpretations,
	)

	return m
}
