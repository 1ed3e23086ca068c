package pipeline

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thomas-stellini/AllTrailsAssignment/internal/domain"
)

type stubLoader struct {
	sources *domain.Sources
	err     error
}

func (l *stubLoader) Load(context.Context) (*domain.Sources, error) {
	return l.sources, l.err
}

type capturePersister struct {
	rows  []domain.FinalRow
	calls int
	err   error
}

func (p *capturePersister) Persist(_ context.Context, rows []domain.FinalRow) error {
	p.calls++
	p.rows = rows
	return p.err
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestRunProducesOneRowPerUser(t *testing.T) {
	sources := &domain.Sources{
		Users: []domain.UserRecord{
			{PseudoUserID: "u1", SignupDate: "2017-01-01 10:00:00", StartDate: "2017-02-01 00:00:00"},
			{PseudoUserID: "u2", SignupDate: "2017-01-05 10:00:00"},
			{PseudoUserID: "u3", SignupDate: "2017-01-06 10:00:00"},
		},
		Recordings: []domain.RecordingRecord{
			{RecordingID: "r2", PseudoUserID: "u1", DateTime: "2017-03-02 08:00:00", ActivityType: "Hiking", RecordingSummary: "{'calories': 200}"},
			{RecordingID: "r1", PseudoUserID: "u1", DateTime: "2017-03-01 08:00:00", ActivityType: "Hiking", RecordingSummary: "{'calories': 100, 'timeTotal': 70000, 'speedAverage': 4.0}"},
			{RecordingID: "r3", PseudoUserID: "u2", DateTime: "2017-01-04 08:00:00", ActivityType: "Running", RecordingSummary: "broken {"},
		},
	}
	persister := &capturePersister{}

	rows, err := New(&stubLoader{sources: sources}, persister, WithLogger(quietLogger())).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, persister.calls)
	require.Len(t, rows, 3)

	byUser := map[string]domain.FinalRow{}
	for _, row := range rows {
		byUser[row.PseudoUserID] = row
	}
	require.Len(t, byUser, 3)

	// u1: earliest recording wins, Hiking timeTotal 70000 suppressed by the
	// default rule set, calories kept.
	u1 := byUser["u1"]
	require.Equal(t, "r1", *u1.FirstRecordingID)
	require.Nil(t, u1.FirstRecordingTotalTime)
	require.Equal(t, 100.0, *u1.FirstRecordingCaloriesBurned)
	require.Equal(t, 4.0, *u1.FirstRecordingAverageSpeed)
	require.Equal(t, 0, u1.InvalidFirstRecordingDateFlag)

	// u2: recording predates signup, malformed summary absorbed as empty.
	u2 := byUser["u2"]
	require.Equal(t, 1, u2.InvalidFirstRecordingDateFlag)
	require.Negative(t, *u2.FirstRecordingDurationInHours)
	require.Nil(t, u2.FirstRecordingCaloriesBurned)

	// u3: no recordings at all, but still present.
	u3 := byUser["u3"]
	require.Nil(t, u3.FirstRecordingID)
	require.Nil(t, u3.FirstRecordingDateTime)
	require.Nil(t, u3.FirstRecordingDurationInHours)
}

func TestRunAbortsBeforePersistOnIntegrityViolation(t *testing.T) {
	// The same recording id ends up in two users' first slots.
	sources := &domain.Sources{
		Users: []domain.UserRecord{
			{PseudoUserID: "u1", SignupDate: "2017-01-01 10:00:00"},
			{PseudoUserID: "u2", SignupDate: "2017-01-01 10:00:00"},
		},
		Recordings: []domain.RecordingRecord{
			{RecordingID: "r1", PseudoUserID: "u1", DateTime: "2017-03-01 08:00:00", ActivityType: "Hiking"},
			{RecordingID: "r1", PseudoUserID: "u2", DateTime: "2017-03-01 08:00:00", ActivityType: "Hiking"},
		},
	}
	persister := &capturePersister{}

	_, err := New(&stubLoader{sources: sources}, persister, WithLogger(quietLogger())).Run(context.Background())

	require.ErrorIs(t, err, domain.ErrDuplicateRecordingID)
	require.Zero(t, persister.calls)
}

func TestRunPropagatesLoaderError(t *testing.T) {
	wantErr := &domain.SourceReadError{Source: "users", Err: errors.New("missing")}
	persister := &capturePersister{}

	_, err := New(&stubLoader{err: wantErr}, persister, WithLogger(quietLogger())).Run(context.Background())

	var sourceErr *domain.SourceReadError
	require.ErrorAs(t, err, &sourceErr)
	require.Zero(t, persister.calls)
}

func TestRunPropagatesCoercionError(t *testing.T) {
	sources := &domain.Sources{
		Users: []domain.UserRecord{{PseudoUserID: "u1", SignupDate: "garbage"}},
	}
	persister := &capturePersister{}

	_, err := New(&stubLoader{sources: sources}, persister, WithLogger(quietLogger())).Run(context.Background())

	var coercionErr *domain.CoercionError
	require.ErrorAs(t, err, &coercionErr)
	require.Zero(t, persister.calls)
}

func TestRunPropagatesPersisterError(t *testing.T) {
	sources := &domain.Sources{
		Users: []domain.UserRecord{{PseudoUserID: "u1", SignupDate: "2017-01-01 10:00:00"}},
	}
	persister := &capturePersister{err: errors.New("disk full")}

	_, err := New(&stubLoader{sources: sources}, persister, WithLogger(quietLogger())).Run(context.Background())
	require.EqualError(t, err, "disk full")
}

func TestRunHonoursCustomRules(t *testing.T) {
	sources := &domain.Sources{
		Users: []domain.UserRecord{{PseudoUserID: "u1", SignupDate: "2017-01-01 10:00:00"}},
		Recordings: []domain.RecordingRecord{
			{RecordingID: "r1", PseudoUserID: "u1", DateTime: "2017-03-01 08:00:00", ActivityType: "Running", RecordingSummary: "{'paceAverage': 45.0}"},
		},
	}
	rules := []Rule{{ActivityType: "Running", Metric: "FirstRecordingAveragePace", MaxValue: 30}}
	persister := &capturePersister{}

	rows, err := New(&stubLoader{sources: sources}, persister, WithLogger(quietLogger()), WithRules(rules)).Run(context.Background())
	require.NoError(t, err)
	require.Nil(t, rows[0].FirstRecordingAveragePace)
}
