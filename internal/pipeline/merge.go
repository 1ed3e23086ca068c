// Package pipeline implements the whole-table transform stages that turn the
// users and recordings sources into the one-row-per-user first-recording
// dataset.
package pipeline

import "github.com/thomas-stellini/AllTrailsAssignment/internal/domain"

// Merge left-joins recordings onto users by PseudoUserID and projects down to
// the columns of interest. Every user appears at least once; users without
// recordings carry nil recording columns. Row order is users order, then
// recordings order within a user. No deduplication happens here.
func Merge(users []domain.UserRecord, recordings []domain.RecordingRecord) []domain.MergedRow {
	byUser := make(map[string][]domain.RecordingRecord, len(users))
	for _, rec := range recordings {
		byUser[rec.PseudoUserID] = append(byUser[rec.PseudoUserID], rec)
	}

	rows := make([]domain.MergedRow, 0, len(users))
	for _, user := range users {
		matches := byUser[user.PseudoUserID]
		if len(matches) == 0 {
			rows = append(rows, domain.MergedRow{
				PseudoUserID: user.PseudoUserID,
				SignupDate:   user.SignupDate,
				StartDate:    user.StartDate,
			})
			continue
		}
		for _, rec := range matches {
			rec := rec // per-iteration copy: the row stores pointers into rec
			rows = append(rows, domain.MergedRow{
				PseudoUserID:     user.PseudoUserID,
				SignupDate:       user.SignupDate,
				StartDate:        user.StartDate,
				RecordingID:      &rec.RecordingID,
				DateTime:         &rec.DateTime,
				ActivityType:     &rec.ActivityType,
				RecordingSummary: &rec.RecordingSummary,
			})
		}
	}
	return rows
}
