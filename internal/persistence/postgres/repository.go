// Package postgres provides an optional Postgres sink for the final dataset.
package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thomas-stellini/AllTrailsAssignment/internal/domain"
)

const schema = `CREATE TABLE IF NOT EXISTS user_first_recordings (
    run_id                             UUID NOT NULL,
    pseudo_user_id                     TEXT NOT NULL,
    account_sign_up_date_time          TIMESTAMPTZ,
    pro_subscription_sign_up_date_time TIMESTAMPTZ,
    first_recording_id                 TEXT,
    first_recording_date_time          TIMESTAMPTZ,
    first_recording_activity_type      TEXT,
    first_recording_calories_burned    DOUBLE PRECISION,
    first_recording_duration           DOUBLE PRECISION,
    first_recording_total_time         DOUBLE PRECISION,
    first_recording_updated_date_time  TIMESTAMPTZ,
    first_recording_moving_time        DOUBLE PRECISION,
    first_recording_average_pace       DOUBLE PRECISION,
    first_recording_average_speed      DOUBLE PRECISION,
    first_recording_total_distance     DOUBLE PRECISION,
    first_recording_elevation_gain     DOUBLE PRECISION,
    first_recording_elevation_loss     DOUBLE PRECISION,
    invalid_first_recording_date_flag  SMALLINT NOT NULL,
    first_recording_duration_in_hours  INTEGER,
    persisted_at                       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (run_id, pseudo_user_id)
)`

// Repository provides Postgres-backed persistence for the final dataset.
// Each Persist call writes the whole table under a fresh run id inside a
// single transaction, so a failed run leaves nothing behind.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the destination table if it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schema)
	return err
}

// Persist inserts all rows under one run id.
func (r *Repository) Persist(ctx context.Context, rows []domain.FinalRow) error {
	runID := uuid.NewString()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insert = `INSERT INTO user_first_recordings (
        run_id, pseudo_user_id, account_sign_up_date_time, pro_subscription_sign_up_date_time,
        first_recording_id, first_recording_date_time, first_recording_activity_type,
        first_recording_calories_burned, first_recording_duration, first_recording_total_time,
        first_recording_updated_date_time, first_recording_moving_time, first_recording_average_pace,
        first_recording_average_speed, first_recording_total_distance, first_recording_elevation_gain,
        first_recording_elevation_loss, invalid_first_recording_date_flag, first_recording_duration_in_hours)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`

	for _, row := range rows {
		if _, err := tx.Exec(ctx, insert,
			runID,
			row.PseudoUserID,
			row.AccountSignUpDateTime,
			row.ProSubscriptionSignUpDateTime,
			row.FirstRecordingID,
			row.FirstRecordingDateTime,
			row.FirstRecordingActivityType,
			row.FirstRecordingCaloriesBurned,
			row.FirstRecordingDuration,
			row.FirstRecordingTotalTime,
			row.FirstRecordingUpdatedDateTime,
			row.FirstRecordingMovingTime,
			row.FirstRecordingAveragePace,
			row.FirstRecordingAverageSpeed,
			row.FirstRecordingTotalDistance,
			row.FirstRecordingElevationGain,
			row.FirstRecordingElevationLoss,
			row.InvalidFirstRecordingDateFlag,
			row.FirstRecordingDurationInHours,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
