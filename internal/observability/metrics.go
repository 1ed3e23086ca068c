package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	runCompletedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "recording_pipeline",
		Subsystem: "run",
		Name:      "last_completed_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successful pipeline run.",
	})
	runRowsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "recording_pipeline",
		Subsystem: "run",
		Name:      "last_completed_rows",
		Help:      "Row count persisted by the most recent successful pipeline run.",
	})
)

func init() {
	prometheus.MustRegister(runCompletedGauge, runRowsGauge)
}

// RecordRunCompleted updates the run watermark gauges.
func RecordRunCompleted(ts time.Time, rows int) {
	if ts.IsZero() {
		return
	}
	runCompletedGauge.Set(float64(ts.Unix()))
	runRowsGauge.Set(float64(rows))
}
