package pipeline

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/thomas-stellini/AllTrailsAssignment/internal/domain"
)

// Timestamp layouts accepted in the source tables, tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// NormalizerOption configures optional behaviour for the Normalizer.
type NormalizerOption func(*Normalizer)

// WithNormalizerLogger overrides the logger used to report malformed summaries.
func WithNormalizerLogger(logger *log.Logger) NormalizerOption {
	return func(n *Normalizer) {
		n.logger = logger
	}
}

// Normalizer coerces the textual columns of the first-record rows into typed
// values: the three timestamp columns into time.Time and the summary blob
// into its structured form.
type Normalizer struct {
	logger *log.Logger
}

// NewNormalizer constructs a Normalizer.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		logger: log.New(log.Writer(), "[normalize] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize coerces every row. A non-empty timestamp that does not parse is
// data corruption and fails the run with a *domain.CoercionError; an empty
// one stays nil. A summary that does not parse is treated as absent data:
// the row gets an empty summary and the condition is logged and counted,
// never raised.
func (n *Normalizer) Normalize(rows []domain.MergedRow) ([]domain.NormalizedRow, error) {
	out := make([]domain.NormalizedRow, 0, len(rows))
	for _, row := range rows {
		signup, err := parseTimestamp("AccountSignUpDateTime", row.SignupDate)
		if err != nil {
			return nil, err
		}
		start, err := parseTimestamp("ProSubscriptionSignUpDateTime", row.StartDate)
		if err != nil {
			return nil, err
		}
		var recorded *time.Time
		if row.DateTime != nil {
			recorded, err = parseTimestamp("FirstRecordingDateTime", *row.DateTime)
			if err != nil {
				return nil, err
			}
		}

		summary := domain.RecordingSummary{}
		if row.RecordingSummary != nil && strings.TrimSpace(*row.RecordingSummary) != "" {
			parsed, err := ParseSummary(*row.RecordingSummary)
			if err != nil {
				n.logger.Printf("malformed recording summary for user %s, treating as empty: %v", row.PseudoUserID, err)
				recordMalformedSummary()
			} else {
				summary = parsed
			}
		}

		out = append(out, domain.NormalizedRow{
			PseudoUserID: row.PseudoUserID,
			SignupDate:   signup,
			StartDate:    start,
			RecordingID:  row.RecordingID,
			DateTime:     recorded,
			ActivityType: row.ActivityType,
			Summary:      summary,
		})
	}
	return out, nil
}

// parseTimestamp parses a source timestamp, trying each accepted layout.
// Empty input stays nil.
func parseTimestamp(column, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return &ts, nil
		}
	}
	return nil, &domain.CoercionError{
		Column: column,
		Value:  value,
		Err:    fmt.Errorf("unrecognised timestamp format"),
	}
}

// ParseSummary decodes a string-encoded recording summary. The sources carry
// both JSON objects and Python dict literals (single quotes, None), so the
// literal form is rewritten to JSON before decoding. Unknown keys are
// ignored.
func ParseSummary(text string) (domain.RecordingSummary, error) {
	raw := map[string]any{}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		rewritten := pythonLiteralToJSON(text)
		if err := json.Unmarshal([]byte(rewritten), &raw); err != nil {
			return domain.RecordingSummary{}, fmt.Errorf("not a mapping: %w", err)
		}
	}

	var summary domain.RecordingSummary
	for key, value := range raw {
		switch key {
		case "calories":
			summary.Calories = asFloat(value)
		case "duration":
			summary.Duration = asFloat(value)
		case "timeTotal":
			summary.TimeTotal = asFloat(value)
		case "timeMoving":
			summary.TimeMoving = asFloat(value)
		case "paceAverage":
			summary.PaceAverage = asFloat(value)
		case "speedAverage":
			summary.SpeedAverage = asFloat(value)
		case "distanceTotal":
			summary.DistanceTotal = asFloat(value)
		case "elevationGain":
			summary.ElevationGain = asFloat(value)
		case "elevationLoss":
			summary.ElevationLoss = asFloat(value)
		case "updatedAt":
			summary.UpdatedAt = asTime(value)
		}
	}
	return summary, nil
}

// pythonLiteralToJSON rewrites a Python dict literal into JSON text. Quotes
// inside values are not expected in the summary vocabulary, so a plain
// character sweep is enough.
func pythonLiteralToJSON(text string) string {
	replacer := strings.NewReplacer(
		"'", `"`,
		"None", "null",
		"True", "true",
		"False", "false",
	)
	return replacer.Replace(text)
}

func asFloat(value any) *float64 {
	if v, ok := value.(float64); ok {
		return &v
	}
	return nil
}

// asTime accepts either a textual timestamp or a numeric epoch-seconds value
// for the updatedAt key.
func asTime(value any) *time.Time {
	switch v := value.(type) {
	case string:
		ts, err := parseTimestamp("FirstRecordingUpdatedDateTime", v)
		if err != nil {
			return nil
		}
		return ts
	case float64:
		ts := time.Unix(int64(v), 0).UTC()
		return &ts
	default:
		return nil
	}
}
