package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thomas-stellini/AllTrailsAssignment/internal/domain"
)

func TestFlattenProjectsSummaryColumns(t *testing.T) {
	signup := mustTime(t, "2017-01-01 10:00:00")
	recorded := mustTime(t, "2017-03-01 08:00:00")
	updated := mustTime(t, "2017-03-01 09:00:00")

	rows := []domain.NormalizedRow{
		{
			PseudoUserID: "u1",
			SignupDate:   &signup,
			RecordingID:  strPtr("r1"),
			DateTime:     &recorded,
			ActivityType: strPtr("Hiking"),
			Summary: domain.RecordingSummary{
				Calories:      floatPtr(150),
				TimeTotal:     floatPtr(3600),
				SpeedAverage:  floatPtr(4.2),
				ElevationGain: floatPtr(230),
				UpdatedAt:     &updated,
			},
		},
	}

	out := Flatten(rows)
	require.Len(t, out, 1)

	row := out[0]
	require.Equal(t, "u1", row.PseudoUserID)
	require.Equal(t, signup, *row.AccountSignUpDateTime)
	require.Nil(t, row.ProSubscriptionSignUpDateTime)
	require.Equal(t, "r1", *row.FirstRecordingID)
	require.Equal(t, "Hiking", *row.FirstRecordingActivityType)
	require.Equal(t, 150.0, *row.FirstRecordingCaloriesBurned)
	require.Equal(t, 3600.0, *row.FirstRecordingTotalTime)
	require.Equal(t, 4.2, *row.FirstRecordingAverageSpeed)
	require.Equal(t, 230.0, *row.FirstRecordingElevationGain)
	require.Equal(t, updated, *row.FirstRecordingUpdatedDateTime)

	// Absent keys stay nil rather than zero.
	require.Nil(t, row.FirstRecordingDuration)
	require.Nil(t, row.FirstRecordingMovingTime)
	require.Nil(t, row.FirstRecordingAveragePace)
	require.Nil(t, row.FirstRecordingTotalDistance)
	require.Nil(t, row.FirstRecordingElevationLoss)
}

func TestFlattenRoundTripsSummary(t *testing.T) {
	updated := mustTime(t, "2017-03-01 09:00:00")
	summary := domain.RecordingSummary{
		Calories:      floatPtr(120),
		Duration:      floatPtr(1800),
		TimeTotal:     floatPtr(2000),
		TimeMoving:    floatPtr(1700),
		PaceAverage:   floatPtr(5.5),
		SpeedAverage:  floatPtr(3.1),
		DistanceTotal: floatPtr(9000),
		ElevationGain: floatPtr(120),
		ElevationLoss: floatPtr(115),
		UpdatedAt:     &updated,
	}

	out := Flatten([]domain.NormalizedRow{{PseudoUserID: "u1", Summary: summary}})
	require.Len(t, out, 1)
	require.Equal(t, summary, nest(out[0]))
}

func TestFlattenEmptySummary(t *testing.T) {
	out := Flatten([]domain.NormalizedRow{{PseudoUserID: "u1"}})
	require.Len(t, out, 1)
	require.True(t, nest(out[0]).IsEmpty())
}
