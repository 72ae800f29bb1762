package view

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/incrseq/incrseq/pkg/delta"
)

// Prometheus metrics - global only (no unbounded label cardinality: kinds and
// variant names are closed sets).
var (
	deltasAppliedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "incrseq_deltas_applied_total",
		Help: "Total atomic deltas applied to sources, by delta kind",
	}, []string{"kind"})
	deltasRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "incrseq_deltas_rejected_total",
		Help: "Total deltas rejected by source validation",
	})
	translatedDeltasTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "incrseq_translated_deltas_total",
		Help: "Total translated deltas emitted by derived views, by transform variant",
	}, []string{"variant"})
	translationErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "incrseq_translation_errors_total",
		Help: "Total delta translation failures, by transform variant",
	}, []string{"variant"})
)

func init() {
	prometheus.MustRegister(deltasAppliedTotal, deltasRejectedTotal,
		translatedDeltasTotal, translationErrorsTotal)
}

func observeApplied[T any](d delta.Delta[T]) {
	for _, m := range d.Flatten() {
		deltasAppliedTotal.WithLabelValues(m.Kind.String()).Inc()
	}
}

func observeRejected() {
	deltasRejectedTotal.Inc()
}

func observeTranslated(variant string, n int) {
	translatedDeltasTotal.WithLabelValues(variant).Add(float64(n))
}

func observeTranslationError(variant string) {
	translationErrorsTotal.WithLabelValues(variant).Inc()
}
