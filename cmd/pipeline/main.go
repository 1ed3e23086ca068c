package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thomas-stellini/AllTrailsAssignment/internal/config"
	"github.com/thomas-stellini/AllTrailsAssignment/internal/domain"
	"github.com/thomas-stellini/AllTrailsAssignment/internal/loader"
	"github.com/thomas-stellini/AllTrailsAssignment/internal/observability"
	csvsink "github.com/thomas-stellini/AllTrailsAssignment/internal/persistence/csv"
	pgsink "github.com/thomas-stellini/AllTrailsAssignment/internal/persistence/postgres"
	"github.com/thomas-stellini/AllTrailsAssignment/internal/pipeline"
)

// Exit codes by error category.
const (
	exitFailure   = 1
	exitSource    = 2
	exitCoercion  = 3
	exitIntegrity = 4
)

// multiPersister fans the validated table out to every configured sink, in
// order, stopping at the first failure. Each sink commits atomically on its
// own (the CSV writer renames a temp file into place, the Postgres sink
// writes one transaction), but there is no cross-sink transaction: a sink
// that failed after an earlier one succeeded leaves the earlier output in
// place while the process exits non-zero.
type multiPersister []pipeline.Persister

func (m multiPersister) Persist(ctx context.Context, rows []domain.FinalRow) error {
	for _, p := range m {
		if err := p.Persist(ctx, rows); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.MetricsAddress != "" {
		go func() {
			log.Printf("metrics listening on %s", cfg.MetricsAddress)
			if err := http.ListenAndServe(cfg.MetricsAddress, promhttp.Handler()); err != nil {
				log.Printf("metrics server error: %v", err)
			}
		}()
	}

	sinks := multiPersister{csvsink.NewWriter(cfg.OutputPath)}
	if cfg.PostgresURL != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()

		repo := pgsink.NewRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("failed to prepare postgres schema: %v", err)
		}
		sinks = append(sinks, repo)
	}

	opts := []pipeline.Option{}
	if cfg.OutlierRules != "" {
		rules, err := pipeline.ParseRules(cfg.OutlierRules)
		if err != nil {
			log.Fatalf("invalid OUTLIER_RULES: %v", err)
		}
		opts = append(opts, pipeline.WithRules(rules))
	}

	p := pipeline.New(loader.NewTSV(cfg.SourceDir, cfg.SourceSuffix), sinks, opts...)

	rows, err := p.Run(ctx)
	if err != nil {
		log.Printf("pipeline failed: %v", err)
		os.Exit(exitCode(err))
	}

	observability.RecordRunCompleted(time.Now().UTC(), len(rows))
	log.Printf("pipeline completed: %d rows persisted", len(rows))
}

func exitCode(err error) int {
	var sourceErr *domain.SourceReadError
	var coercionErr *domain.CoercionError
	var integrityErr *domain.IntegrityError
	switch {
	case errors.As(err, &sourceErr):
		return exitSource
	case errors.As(err, &coercionErr):
		return exitCoercion
	case errors.As(err, &integrityErr):
		return exitIntegrity
	default:
		return exitFailure
	}
}
