package pipeline

import "github.com/thomas-stellini/AllTrailsAssignment/internal/domain"

// ComputeDerived fills in the two calculated columns and returns a fresh
// slice, leaving its input untouched.
//
// InvalidFirstRecordingDateFlag is 1 exactly when both timestamps are present
// and the account signup is strictly later than the first recording. A nil
// timestamp on either side means the ordering cannot be judged, so the flag
// stays 0 rather than letting the comparison's outcome float.
//
// FirstRecordingDurationInHours is the elapsed seconds between signup and
// first recording divided by 3600, truncated toward zero. It is negative
// whenever the invalid-date flag is set; that is expected. Rows missing
// either timestamp get nil.
func ComputeDerived(rows []domain.FinalRow) []domain.FinalRow {
	out := make([]domain.FinalRow, len(rows))
	for i, row := range rows {
		if row.AccountSignUpDateTime != nil && row.FirstRecordingDateTime != nil {
			if row.AccountSignUpDateTime.After(*row.FirstRecordingDateTime) {
				row.InvalidFirstRecordingDateFlag = 1
			} else {
				row.InvalidFirstRecordingDateFlag = 0
			}
			seconds := row.FirstRecordingDateTime.Sub(*row.AccountSignUpDateTime).Seconds()
			hours := int(seconds / 3600)
			row.FirstRecordingDurationInHours = &hours
		} else {
			row.InvalidFirstRecordingDateFlag = 0
			row.FirstRecordingDurationInHours = nil
		}
		out[i] = row
	}
	return out
}
