// Package domain defines the row types and integrity invariants shared by the
// pipeline stages.
package domain

import "time"

// UserRecord is one row of the users source table, still in its raw textual
// form. PseudoUserID is the unique key; StartDate is empty for users without
// a pro subscription.
type UserRecord struct {
	PseudoUserID string
	SignupDate   string
	StartDate    string
}

// RecordingRecord is one row of the recordings source table. PseudoUserID is
// a foreign key and may repeat; RecordingSummary is a string-encoded mapping
// that may be empty.
type RecordingRecord struct {
	RecordingID      string
	PseudoUserID     string
	DateTime         string
	ActivityType     string
	RecordingSummary string
}

// RecordingSummary is the parsed per-recording metrics blob. Every field is
// independently optional: nil means the key was absent from the recording.
type RecordingSummary struct {
	Calories      *float64
	Duration      *float64
	TimeTotal     *float64
	TimeMoving    *float64
	PaceAverage   *float64
	SpeedAverage  *float64
	DistanceTotal *float64
	ElevationGain *float64
	ElevationLoss *float64
	UpdatedAt     *time.Time
}

// IsEmpty reports whether no summary field is populated.
func (s RecordingSummary) IsEmpty() bool {
	return s.Calories == nil && s.Duration == nil && s.TimeTotal == nil &&
		s.TimeMoving == nil && s.PaceAverage == nil && s.SpeedAverage == nil &&
		s.DistanceTotal == nil && s.ElevationGain == nil && s.ElevationLoss == nil &&
		s.UpdatedAt == nil
}

// MergedRow is one user left-joined with zero or one recording. Recording
// columns are nil for users without any recording. Timestamps are still raw
// text at this point; type coercion happens after first-record selection.
type MergedRow struct {
	PseudoUserID     string
	SignupDate       string
	StartDate        string
	RecordingID      *string
	DateTime         *string
	ActivityType     *string
	RecordingSummary *string
}

// NormalizedRow is a MergedRow after type coercion: timestamps parsed into
// time.Time and the summary text parsed into its structured form.
type NormalizedRow struct {
	PseudoUserID string
	SignupDate   *time.Time
	StartDate    *time.Time
	RecordingID  *string
	DateTime     *time.Time
	ActivityType *string
	Summary      RecordingSummary
}

// FinalRow is the output schema, one row per user. Field order matches the
// column order of the persisted dataset.
type FinalRow struct {
	PseudoUserID                  string
	AccountSignUpDateTime         *time.Time
	ProSubscriptionSignUpDateTime *time.Time
	FirstRecordingID              *string
	FirstRecordingDateTime        *time.Time
	FirstRecordingActivityType    *string
	FirstRecordingCaloriesBurned  *float64
	FirstRecordingDuration        *float64
	FirstRecordingTotalTime       *float64
	FirstRecordingUpdatedDateTime *time.Time
	FirstRecordingMovingTime      *float64
	FirstRecordingAveragePace     *float64
	FirstRecordingAverageSpeed    *float64
	FirstRecordingTotalDistance   *float64
	FirstRecordingElevationGain   *float64
	FirstRecordingElevationLoss   *float64
	InvalidFirstRecordingDateFlag int
	FirstRecordingDurationInHours *int
}

// Sources bundles the two loaded input tables. Tables are addressed through
// this struct explicitly rather than looked up by source name.
type Sources struct {
	Users      []UserRecord
	Recordings []RecordingRecord
}
