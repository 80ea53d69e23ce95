package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	importRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "barista",
		Subsystem: "etl",
		Name:      "runs_total",
		Help:      "Import runs by model and result (success, rejected, failed).",
	}, []string{"model", "result"})

	importRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "barista",
		Subsystem: "etl",
		Name:      "rows_total",
		Help:      "Rows seen by the loader by model and outcome (inserted, skipped, rejected).",
	}, []string{"model", "outcome"})

	validationFindings = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "barista",
		Subsystem: "etl",
		Name:      "validation_findings_total",
		Help:      "Validation messages recorded by model and category.",
	}, []string{"model", "category"})

	importDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "barista",
		Subsystem: "etl",
		Name:      "run_duration_seconds",
		Help:      "Wall time of import runs from extraction to commit.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"model"})

	activeImports = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "barista",
		Subsystem: "etl",
		Name:      "active_imports",
		Help:      "Imports currently holding a limiter slot.",
	})
)

const (
	resultSuccess  = "success"
	resultRejected = "rejected"
	resultFailed   = "failed"
)

func recordFindings(m ModelType, r *Report) {
	for _, c := range Categories {
		if n := len(r.Messages(c)); n > 0 {
			validationFindings.WithLabelValues(m.String(), string(c)).Add(float64(n))
		}
	}
}

func recordOutcome(m ModelType, out LoadOutcome) {
	model := m.String()
	importRows.WithLabelValues(model, "inserted").Add(float64(out.Inserted))
	importRows.WithLabelValues(model, "skipped").Add(float64(out.Skipped))
	importRows.WithLabelValues(model, "rejected").Add(float64(out.Rejected))
}
