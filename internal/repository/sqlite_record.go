package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/db"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
)

// SQLiteRunRecordRepo implements RunRecordRepo using a SQLite database.
type SQLiteRunRecordRepo struct {
	db db.DBTX
}

// NewSQLiteRunRecordRepo creates a new SQLiteRunRecordRepo.
func NewSQLiteRunRecordRepo(conn db.DBTX) *SQLiteRunRecordRepo {
	return &SQLiteRunRecordRepo{db: conn}
}

func (r *SQLiteRunRecordRepo) Create(ctx context.Context, rec *domain.RunRecord) error {
	query := `INSERT INTO run_records (id, plan_id, week_index, day_index,
			planned_distance, actual_distance, actual_pace, moving_time_sec, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.PlanID,
		rec.WeekIndex,
		rec.DayIndex,
		rec.PlannedDistance,
		rec.ActualDistance,
		rec.ActualPace,
		rec.MovingTimeSec,
		rec.SyncedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting run record: %w", err)
	}
	return nil
}

func (r *SQLiteRunRecordRepo) ListByPlan(ctx context.Context, planID string) ([]domain.RunRecord, error) {
	query := `SELECT id, plan_id, week_index, day_index, planned_distance,
			actual_distance, actual_pace, moving_time_sec, synced_at
		FROM run_records WHERE plan_id = ? ORDER BY synced_at, week_index, day_index`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing run records: %w", err)
	}
	defer rows.Close()

	var records []domain.RunRecord
	for rows.Next() {
		var rec domain.RunRecord
		var syncedStr string
		if err := rows.Scan(
			&rec.ID, &rec.PlanID, &rec.WeekIndex, &rec.DayIndex, &rec.PlannedDistance,
			&rec.ActualDistance, &rec.ActualPace, &rec.MovingTimeSec, &syncedStr,
		); err != nil {
			return nil, fmt.Errorf("scanning run record: %w", err)
		}
		if rec.SyncedAt, err = time.Parse(time.RFC3339, syncedStr); err != nil {
			return nil, fmt.Errorf("parsing synced_at: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run records: %w", err)
	}
	return records, nil
}

func (r *SQLiteRunRecordRepo) LatestSyncedAt(ctx context.Context, planID string) (*time.Time, error) {
	query := `SELECT MAX(synced_at) FROM run_records WHERE plan_id = ?`
	var latest sql.NullString
	if err := r.db.QueryRowContext(ctx, query, planID).Scan(&latest); err != nil {
		return nil, fmt.Errorf("querying latest sync: %w", err)
	}
	return parseNullableTime(latest, time.RFC3339), nil
}
