package pipeline

import (
	"strings"

	"github.com/thomas-stellini/AllTrailsAssignment/internal/domain"
)

// SelectFirstRecords keeps, for each distinct user, the row with the earliest
// recording timestamp. Ties break on first-seen row position, never on a
// secondary field. Timestamps are still ISO-8601 text at this stage, so
// lexicographic comparison is chronological. Users whose single row has no
// recording are retained as-is. The result has exactly one row per user, in
// first-seen user order.
func SelectFirstRecords(rows []domain.MergedRow) []domain.MergedRow {
	best := make(map[string]domain.MergedRow, len(rows))
	userOrder := make([]string, 0, len(rows))

	for _, row := range rows {
		current, seen := best[row.PseudoUserID]
		if !seen {
			best[row.PseudoUserID] = row
			userOrder = append(userOrder, row.PseudoUserID)
			continue
		}
		if earlier(row.DateTime, current.DateTime) {
			best[row.PseudoUserID] = row
		}
	}

	out := make([]domain.MergedRow, 0, len(userOrder))
	for _, id := range userOrder {
		out = append(out, best[id])
	}
	return out
}

// earlier reports whether a strictly precedes b. A missing timestamp never
// beats an existing candidate, and a real timestamp always beats a missing
// one. Empty and blank cells count as missing: the loader hands them through
// as empty strings, which would otherwise sort ahead of every real timestamp.
func earlier(a, b *string) bool {
	switch {
	case !hasTimestamp(a):
		return false
	case !hasTimestamp(b):
		return true
	default:
		return *a < *b
	}
}

func hasTimestamp(ts *string) bool {
	return ts != nil && strings.TrimSpace(*ts) != ""
}
