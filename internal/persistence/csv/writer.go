// Package csv writes the final dataset to disk as UsersDataset-style CSV.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/thomas-stellini/AllTrailsAssignment/internal/domain"
)

const timestampLayout = "2006-01-02 15:04:05"

// Header is the output column order. It never changes independently of
// domain.FinalRow.
var Header = []string{
	"PseudoUserID",
	"AccountSignUpDateTime",
	"ProSubscriptionSignUpDateTime",
	"FirstRecordingID",
	"FirstRecordingDateTime",
	"FirstRecordingActivityType",
	"FirstRecordingCaloriesBurned",
	"FirstRecordingDuration",
	"FirstRecordingTotalTime",
	"FirstRecordingUpdatedDateTime",
	"FirstRecordingMovingTime",
	"FirstRecordingAveragePace",
	"FirstRecordingAverageSpeed",
	"FirstRecordingTotalDistance",
	"FirstRecordingElevationGain",
	"FirstRecordingElevationLoss",
	"InvalidFirstRecordingDateFlag",
	"FirstRecordingDurationInHours",
}

// Writer persists the final table to a single CSV file, creating the parent
// directory on demand. Nil cells are written as empty fields.
type Writer struct {
	path string
}

// NewWriter constructs a Writer targeting path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Persist writes all rows plus the header. The file is only created once the
// caller has validated the table, and it appears atomically: rows go to a
// temporary file in the target directory which is renamed into place only
// after a clean flush, so a failed write never leaves a partial dataset.
func (w *Writer) Persist(ctx context.Context, rows []domain.FinalRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(w.path), filepath.Base(w.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(f.Name())
	}()

	cw := csv.NewWriter(f)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(record(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), w.path)
}

func record(row domain.FinalRow) []string {
	hours := ""
	if row.FirstRecordingDurationInHours != nil {
		hours = strconv.Itoa(*row.FirstRecordingDurationInHours)
	}
	return []string{
		row.PseudoUserID,
		formatTime(row.AccountSignUpDateTime),
		formatTime(row.ProSubscriptionSignUpDateTime),
		formatString(row.FirstRecordingID),
		formatTime(row.FirstRecordingDateTime),
		formatString(row.FirstRecordingActivityType),
		formatFloat(row.FirstRecordingCaloriesBurned),
		formatFloat(row.FirstRecordingDuration),
		formatFloat(row.FirstRecordingTotalTime),
		formatTime(row.FirstRecordingUpdatedDateTime),
		formatFloat(row.FirstRecordingMovingTime),
		formatFloat(row.FirstRecordingAveragePace),
		formatFloat(row.FirstRecordingAverageSpeed),
		formatFloat(row.FirstRecordingTotalDistance),
		formatFloat(row.FirstRecordingElevationGain),
		formatFloat(row.FirstRecordingElevationLoss),
		strconv.Itoa(row.InvalidFirstRecordingDateFlag),
		hours,
	}
}

func formatTime(ts *time.Time) string {
	if ts == nil {
		return ""
	}
	return ts.Format(timestampLayout)
}

func formatString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
