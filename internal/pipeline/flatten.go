package pipeline

import "github.com/thomas-stellini/AllTrailsAssignment/internal/domain"

// Flatten expands each row's structured summary into the named output
// columns of the final schema, applying the fixed rename vocabulary
// (calories -> FirstRecordingCaloriesBurned and so on). Absent summary
// fields stay nil; the structured column itself does not survive into the
// output. Scalar columns pick up their output names through the FinalRow
// schema: PseudoUserID, AccountSignUpDateTime, ProSubscriptionSignUpDateTime,
// FirstRecordingID, FirstRecordingDateTime, FirstRecordingActivityType.
func Flatten(rows []domain.NormalizedRow) []domain.FinalRow {
	out := make([]domain.FinalRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.FinalRow{
			PseudoUserID:                  row.PseudoUserID,
			AccountSignUpDateTime:         row.SignupDate,
			ProSubscriptionSignUpDateTime: row.StartDate,
			FirstRecordingID:              row.RecordingID,
			FirstRecordingDateTime:        row.DateTime,
			FirstRecordingActivityType:    row.ActivityType,
			FirstRecordingCaloriesBurned:  row.Summary.Calories,
			FirstRecordingDuration:        row.Summary.Duration,
			FirstRecordingTotalTime:       row.Summary.TimeTotal,
			FirstRecordingUpdatedDateTime: row.Summary.UpdatedAt,
			FirstRecordingMovingTime:      row.Summary.TimeMoving,
			FirstRecordingAveragePace:     row.Summary.PaceAverage,
			FirstRecordingAverageSpeed:    row.Summary.SpeedAverage,
			FirstRecordingTotalDistance:   row.Summary.DistanceTotal,
			FirstRecordingElevationGain:   row.Summary.ElevationGain,
			FirstRecordingElevationLoss:   row.Summary.ElevationLoss,
		})
	}
	return out
}

// nest rebuilds the structured summary from a flattened row. It is the
// inverse of the summary projection in Flatten and exists so the two stay in
// lockstep under test.
func nest(row domain.FinalRow) domain.RecordingSummary {
	return domain.RecordingSummary{
		Calories:      row.FirstRecordingCaloriesBurned,
		Duration:      row.FirstRecordingDuration,
		TimeTotal:     row.FirstRecordingTotalTime,
		TimeMoving:    row.FirstRecordingMovingTime,
		PaceAverage:   row.FirstRecordingAveragePace,
		SpeedAverage:  row.FirstRecordingAverageSpeed,
		DistanceTotal: row.FirstRecordingTotalDistance,
		ElevationGain: row.FirstRecordingElevationGain,
		ElevationLoss: row.FirstRecordingElevationLoss,
		UpdatedAt:     row.FirstRecordingUpdatedDateTime,
	}
}
