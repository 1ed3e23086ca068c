package pipeline

import "github.com/prometheus/client_golang/prometheus"

var (
	rowsMergedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "recording_pipeline",
		Subsystem: "transform",
		Name:      "rows_merged_total",
		Help:      "Number of rows produced by the users/recordings left join.",
	})

	rowsSelectedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "recording_pipeline",
		Subsystem: "transform",
		Name:      "rows_selected_total",
		Help:      "Number of per-user first-record rows kept after selection.",
	})

	malformedSummaryCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "recording_pipeline",
		Subsystem: "transform",
		Name:      "malformed_summaries_total",
		Help:      "Number of recording summaries that could not be parsed and were treated as empty.",
	})

	suppressedCellCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "recording_pipeline",
		Subsystem: "transform",
		Name:      "suppressed_cells_total",
		Help:      "Number of metric cells nulled by outlier rules, grouped by activity type and metric.",
	}, []string{"activity_type", "metric"})

	validationFailureCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "recording_pipeline",
		Subsystem: "validation",
		Name:      "failures_total",
		Help:      "Number of integrity check failures grouped by check.",
	}, []string{"check"})
)

func init() {
	prometheus.MustRegister(
		rowsMergedCounter,
		rowsSelectedCounter,
		malformedSummaryCounter,
		suppressedCellCounter,
		validationFailureCounter,
	)
}

func recordRowsMerged(n int) {
	rowsMergedCounter.Add(float64(n))
}

func recordRowsSelected(n int) {
	rowsSelectedCounter.Add(float64(n))
}

func recordMalformedSummary() {
	malformedSummaryCounter.Inc()
}

func recordSuppressedCell(activityType, metric string) {
	suppressedCellCounter.WithLabelValues(activityType, metric).Inc()
}

func recordValidationFailure(check string) {
	validationFailureCounter.WithLabelValues(check).Inc()
}
