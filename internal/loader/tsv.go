// Package loader reads the tab-separated source tables into memory.
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/thomas-stellini/AllTrailsAssignment/internal/domain"
)

// Source table base names. Full file names are <name>_<suffix>.tsv.
const (
	usersSource      = "users"
	recordingsSource = "recordings"
)

// Option configures optional behaviour for the TSV loader.
type Option func(*TSV)

// WithLogger overrides the logger used for load progress messages.
func WithLogger(logger *log.Logger) Option {
	return func(l *TSV) {
		l.logger = logger
	}
}

// TSV loads the users and recordings tables from tab-separated files in a
// single directory, e.g. source_data/users_2017.tsv.
type TSV struct {
	dir    string
	suffix string
	logger *log.Logger
}

// NewTSV constructs a loader rooted at dir for files carrying the given
// suffix (a four digit year in the shipped datasets).
func NewTSV(dir, suffix string, opts ...Option) *TSV {
	l := &TSV{
		dir:    dir,
		suffix: suffix,
		logger: log.New(log.Writer(), "[loader] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads both source tables. Any unreadable file or missing required
// column yields a *domain.SourceReadError.
func (l *TSV) Load(ctx context.Context) (*domain.Sources, error) {
	users, err := l.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	recordings, err := l.loadRecordings(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.Sources{Users: users, Recordings: recordings}, nil
}

func (l *TSV) loadUsers(ctx context.Context) ([]domain.UserRecord, error) {
	rows, err := l.readTable(ctx, usersSource, []string{"Pseudo_User_ID", "signup_date", "start_date"})
	if err != nil {
		return nil, err
	}
	users := make([]domain.UserRecord, len(rows))
	for i, row := range rows {
		users[i] = domain.UserRecord{
			PseudoUserID: row[0],
			SignupDate:   row[1],
			StartDate:    row[2],
		}
	}
	l.logger.Printf("loaded %d users", len(users))
	return users, nil
}

func (l *TSV) loadRecordings(ctx context.Context) ([]domain.RecordingRecord, error) {
	rows, err := l.readTable(ctx, recordingsSource, []string{"Recording_ID", "Pseudo_User_ID", "Date_Time", "Activity_Type", "Recording_Summary"})
	if err != nil {
		return nil, err
	}
	recordings := make([]domain.RecordingRecord, len(rows))
	for i, row := range rows {
		recordings[i] = domain.RecordingRecord{
			RecordingID:      row[0],
			PseudoUserID:     row[1],
			DateTime:         row[2],
			ActivityType:     row[3],
			RecordingSummary: row[4],
		}
	}
	l.logger.Printf("loaded %d recordings", len(recordings))
	return recordings, nil
}

// readTable reads one TSV file and projects each record onto the requested
// columns, in the requested order.
func (l *TSV) readTable(ctx context.Context, source string, columns []string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.SourceReadError{Source: source, Err: err}
	}

	path := filepath.Join(l.dir, fmt.Sprintf("%s_%s.tsv", source, l.suffix))
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.SourceReadError{Source: source, Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = '\t'
	// Summary blobs contain unescaped quote characters.
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &domain.SourceReadError{Source: source, Err: err}
	}

	indices := make([]int, len(columns))
	for i, column := range columns {
		indices[i] = -1
		for j, name := range header {
			if name == column {
				indices[i] = j
				break
			}
		}
		if indices[i] == -1 {
			return nil, &domain.SourceReadError{Source: source, Err: fmt.Errorf("missing column %q", column)}
		}
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &domain.SourceReadError{Source: source, Err: err}
		}
		row := make([]string, len(indices))
		for i, idx := range indices {
			if idx < len(record) {
				row[i] = record[idx]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
