package pipeline

import "github.com/thomas-stellini/AllTrailsAssignment/internal/domain"

// Validate runs the three integrity checks against the final table, in
// order: PseudoUserID unique, FirstRecordingID unique among non-nil values,
// PseudoUserID never empty. The first failing check aborts with a
// *domain.IntegrityError naming the violated invariant, the column, and the
// offending row indices. Nothing is ever silently deduplicated.
func Validate(rows []domain.FinalRow) error {
	seenUsers := make(map[string]struct{}, len(rows))
	var duplicateUsers []int
	for i, row := range rows {
		if _, dup := seenUsers[row.PseudoUserID]; dup {
			duplicateUsers = append(duplicateUsers, i)
		}
		seenUsers[row.PseudoUserID] = struct{}{}
	}
	if len(duplicateUsers) > 0 {
		recordValidationFailure("duplicate_user_id")
		return &domain.IntegrityError{
			Invariant: domain.ErrDuplicateUserID,
			Column:    "PseudoUserID",
			Rows:      duplicateUsers,
		}
	}

	seenRecordings := make(map[string]struct{}, len(rows))
	var duplicateRecordings []int
	for i, row := range rows {
		if row.FirstRecordingID == nil {
			continue
		}
		if _, dup := seenRecordings[*row.FirstRecordingID]; dup {
			duplicateRecordings = append(duplicateRecordings, i)
		}
		seenRecordings[*row.FirstRecordingID] = struct{}{}
	}
	if len(duplicateRecordings) > 0 {
		recordValidationFailure("duplicate_recording_id")
		return &domain.IntegrityError{
			Invariant: domain.ErrDuplicateRecordingID,
			Column:    "FirstRecordingID",
			Rows:      duplicateRecordings,
		}
	}

	var missingUsers []int
	for i, row := range rows {
		if row.PseudoUserID == "" {
			missingUsers = append(missingUsers, i)
		}
	}
	if len(missingUsers) > 0 {
		recordValidationFailure("missing_user_id")
		return &domain.IntegrityError{
			Invariant: domain.ErrMissingUserID,
			Column:    "PseudoUserID",
			Rows:      missingUsers,
		}
	}

	return nil
}
