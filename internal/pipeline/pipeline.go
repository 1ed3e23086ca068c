package pipeline

import (
	"context"
	"log"

	"github.com/thomas-stellini/AllTrailsAssignment/internal/domain"
)

// Loader produces the two source tables. Implementations live at the
// pipeline's edge; everything between load and persist is pure.
type Loader interface {
	Load(ctx context.Context) (*domain.Sources, error)
}

// Persister writes the validated final table. It is only invoked after every
// integrity check has passed, so a failed run never leaves partial output.
type Persister interface {
	Persist(ctx context.Context, rows []domain.FinalRow) error
}

// Option configures optional behaviour for the Pipeline.
type Option func(*Pipeline)

// WithLogger overrides the logger used for stage progress messages.
func WithLogger(logger *log.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithRules replaces the default outlier suppression rule set.
func WithRules(rules []Rule) Option {
	return func(p *Pipeline) {
		p.rules = rules
	}
}

// Pipeline runs the transform stages in order over whole in-memory tables.
// Each stage consumes the previous stage's output and materializes a fresh
// one; no stage mutates a table it was handed.
type Pipeline struct {
	loader    Loader
	persister Persister
	rules     []Rule
	logger    *log.Logger
}

// New constructs a Pipeline with the default rule set.
func New(loader Loader, persister Persister, opts ...Option) *Pipeline {
	p := &Pipeline{
		loader:    loader,
		persister: persister,
		rules:     DefaultRules(),
		logger:    log.New(log.Writer(), "[pipeline] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one batch: load, merge, first-record selection, type
// normalization, summary flattening, derived fields, outlier suppression,
// validation, persistence. The returned rows are the persisted final table.
func (p *Pipeline) Run(ctx context.Context) ([]domain.FinalRow, error) {
	p.logger.Printf("beginning load")
	sources, err := p.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	p.logger.Printf("completed load: %d users, %d recordings", len(sources.Users), len(sources.Recordings))

	p.logger.Printf("beginning merge")
	merged := Merge(sources.Users, sources.Recordings)
	recordRowsMerged(len(merged))
	p.logger.Printf("completed merge: %d rows", len(merged))

	p.logger.Printf("beginning first-record selection")
	selected := SelectFirstRecords(merged)
	recordRowsSelected(len(selected))
	p.logger.Printf("completed first-record selection: %d rows", len(selected))

	p.logger.Printf("beginning normalization")
	normalizer := NewNormalizer(WithNormalizerLogger(p.logger))
	normalized, err := normalizer.Normalize(selected)
	if err != nil {
		return nil, err
	}
	p.logger.Printf("completed normalization")

	p.logger.Printf("beginning summary flattening")
	flattened := Flatten(normalized)
	p.logger.Printf("completed summary flattening")

	p.logger.Printf("beginning derived fields")
	derived := ComputeDerived(flattened)
	p.logger.Printf("completed derived fields")

	p.logger.Printf("beginning outlier suppression: %d rules", len(p.rules))
	suppressed := Suppress(derived, p.rules)
	p.logger.Printf("completed outlier suppression")

	p.logger.Printf("beginning validation")
	if err := Validate(suppressed); err != nil {
		return nil, err
	}
	p.logger.Printf("completed validation")

	p.logger.Printf("beginning persistence")
	if err := p.persister.Persist(ctx, suppressed); err != nil {
		return nil, err
	}
	p.logger.Printf("completed persistence: %d rows", len(suppressed))

	return suppressed, nil
}
