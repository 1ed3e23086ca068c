package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thomas-stellini/AllTrailsAssignment/internal/domain"
)

func derivedRow(t *testing.T, signup, recorded string) domain.FinalRow {
	t.Helper()
	row := domain.FinalRow{PseudoUserID: "u1"}
	if signup != "" {
		row.AccountSignUpDateTime = timePtr(mustTime(t, signup))
	}
	if recorded != "" {
		row.FirstRecordingDateTime = timePtr(mustTime(t, recorded))
	}
	return row
}

func TestInvalidDateFlagSetWhenSignupAfterFirstRecording(t *testing.T) {
	rows := ComputeDerived([]domain.FinalRow{
		derivedRow(t, "2017-01-01 00:00:00", "2016-12-31 00:00:00"),
	})

	require.Equal(t, 1, rows[0].InvalidFirstRecordingDateFlag)
	require.Equal(t, -24, *rows[0].FirstRecordingDurationInHours)
}

func TestInvalidDateFlagZeroWhenOrderingValid(t *testing.T) {
	rows := ComputeDerived([]domain.FinalRow{
		derivedRow(t, "2016-12-31 00:00:00", "2017-01-01 00:00:00"),
	})

	require.Equal(t, 0, rows[0].InvalidFirstRecordingDateFlag)
	require.Equal(t, 24, *rows[0].FirstRecordingDurationInHours)
}

func TestInvalidDateFlagZeroOnEqualTimestamps(t *testing.T) {
	rows := ComputeDerived([]domain.FinalRow{
		derivedRow(t, "2017-01-01 00:00:00", "2017-01-01 00:00:00"),
	})

	require.Equal(t, 0, rows[0].InvalidFirstRecordingDateFlag)
	require.Equal(t, 0, *rows[0].FirstRecordingDurationInHours)
}

func TestMissingTimestampMeansNotInvalid(t *testing.T) {
	rows := ComputeDerived([]domain.FinalRow{
		derivedRow(t, "2017-01-01 00:00:00", ""),
		derivedRow(t, "", "2017-01-01 00:00:00"),
		derivedRow(t, "", ""),
	})

	for _, row := range rows {
		require.Equal(t, 0, row.InvalidFirstRecordingDateFlag)
		require.Nil(t, row.FirstRecordingDurationInHours)
	}
}

func TestDurationTruncatesTowardZero(t *testing.T) {
	signup := mustTime(t, "2017-01-01 00:00:00")

	cases := []struct {
		gap   time.Duration
		hours int
	}{
		{3599 * time.Second, 0},
		{7200 * time.Second, 2},
		{-3599 * time.Second, 0},
		{-5400 * time.Second, -1},
	}
	for _, tc := range cases {
		row := domain.FinalRow{
			AccountSignUpDateTime:  &signup,
			FirstRecordingDateTime: timePtr(signup.Add(tc.gap)),
		}
		out := ComputeDerived([]domain.FinalRow{row})
		require.Equal(t, tc.hours, *out[0].FirstRecordingDurationInHours, "gap %v", tc.gap)
	}
}

func TestComputeDerivedLeavesInputUntouched(t *testing.T) {
	in := []domain.FinalRow{derivedRow(t, "2017-01-01 00:00:00", "2016-12-31 00:00:00")}
	_ = ComputeDerived(in)
	require.Nil(t, in[0].FirstRecordingDurationInHours)
	require.Equal(t, 0, in[0].InvalidFirstRecordingDateFlag)
}
