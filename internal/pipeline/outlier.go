package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/thomas-stellini/AllTrailsAssignment/internal/domain"
)

// Rule nulls out one metric column for one activity type whenever the value
// exceeds MaxValue. Metric is addressed by output column name.
type Rule struct {
	ActivityType string  `json:"activity_type"`
	Metric       string  `json:"metric"`
	MaxValue     float64 `json:"max_value"`
}

// DefaultRules returns the shipped suppression rule set. Callers can replace
// it wholesale through configuration; nothing below depends on these
// particular triples.
func DefaultRules() []Rule {
	return []Rule{
		{ActivityType: "Hiking", Metric: "FirstRecordingTotalTime", MaxValue: 64800},
		{ActivityType: "Backpacking", Metric: "FirstRecordingTotalTime", MaxValue: 864000},
		{ActivityType: "Hiking", Metric: "FirstRecordingAverageSpeed", MaxValue: 6},
	}
}

// ParseRules decodes a JSON array of rules, the format accepted by the
// OUTLIER_RULES environment variable.
func ParseRules(text string) ([]Rule, error) {
	var rules []Rule
	if err := json.Unmarshal([]byte(text), &rules); err != nil {
		return nil, fmt.Errorf("parsing outlier rules: %w", err)
	}
	for _, rule := range rules {
		if metricColumn(&domain.FinalRow{}, rule.Metric) == nil {
			return nil, fmt.Errorf("parsing outlier rules: unknown metric column %q", rule.Metric)
		}
	}
	return rules, nil
}

// Suppress applies each rule to every row, independently and cumulatively in
// listed order: a matching row whose metric exceeds the rule's maximum has
// that one cell set to nil, the rest of the row untouched. Already-nil cells
// stay nil, so applying the rules twice changes nothing.
func Suppress(rows []domain.FinalRow, rules []Rule) []domain.FinalRow {
	out := make([]domain.FinalRow, len(rows))
	copy(out, rows)
	for _, rule := range rules {
		for i := range out {
			if out[i].FirstRecordingActivityType == nil || *out[i].FirstRecordingActivityType != rule.ActivityType {
				continue
			}
			cell := metricColumn(&out[i], rule.Metric)
			if cell == nil || *cell == nil {
				continue
			}
			if **cell > rule.MaxValue {
				*cell = nil
				recordSuppressedCell(rule.ActivityType, rule.Metric)
			}
		}
	}
	return out
}

// metricColumn resolves a metric column name to the addressed cell, or nil
// for a name outside the numeric summary vocabulary.
func metricColumn(row *domain.FinalRow, metric string) **float64 {
	switch metric {
	case "FirstRecordingCaloriesBurned":
		return &row.FirstRecordingCaloriesBurned
	case "FirstRecordingDuration":
		return &row.FirstRecordingDuration
	case "FirstRecordingTotalTime":
		return &row.FirstRecordingTotalTime
	case "FirstRecordingMovingTime":
		return &row.FirstRecordingMovingTime
	case "FirstRecordingAveragePace":
		return &row.FirstRecordingAveragePace
	case "FirstRecordingAverageSpeed":
		return &row.FirstRecordingAverageSpeed
	case "FirstRecordingTotalDistance":
		return &row.FirstRecordingTotalDistance
	case "FirstRecordingElevationGain":
		return &row.FirstRecordingElevationGain
	case "FirstRecordingElevationLoss":
		return &row.FirstRecordingElevationLoss
	default:
		return nil
	}
}
