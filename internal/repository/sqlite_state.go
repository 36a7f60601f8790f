package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/db"
)

// SQLiteEngineStateRepo implements EngineStateRepo using a SQLite
// database: a single row holding the last-analysis timestamp and the
// activity-source connectivity flag.
type SQLiteEngineStateRepo struct {
	db db.DBTX
}

// NewSQLiteEngineStateRepo creates a new SQLiteEngineStateRepo.
func NewSQLiteEngineStateRepo(conn db.DBTX) *SQLiteEngineStateRepo {
	return &SQLiteEngineStateRepo{db: conn}
}

func (r *SQLiteEngineStateRepo) LastAnalysisAt(ctx context.Context) (*time.Time, error) {
	query := `SELECT last_analysis_at FROM engine_state WHERE id = 'default'`
	var last sql.NullString
	err := r.db.QueryRowContext(ctx, query).Scan(&last)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("querying last analysis time: %w", err)
	}
	return parseNullableTime(last, time.RFC3339), nil
}

func (r *SQLiteEngineStateRepo) SetLastAnalysisAt(ctx context.Context, at time.Time) error {
	query := `INSERT INTO engine_state (id, last_analysis_at) VALUES ('default', ?)
		ON CONFLICT(id) DO UPDATE SET last_analysis_at = excluded.last_analysis_at`
	if _, err := r.db.ExecContext(ctx, query, at.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("setting last analysis time: %w", err)
	}
	return nil
}

func (r *SQLiteEngineStateRepo) SourceConnected(ctx context.Context) (bool, error) {
	query := `SELECT source_connected FROM engine_state WHERE id = 'default'`
	var connected int
	err := r.db.QueryRowContext(ctx, query).Scan(&connected)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("querying source connectivity: %w", err)
	}
	return intToBool(connected), nil
}

func (r *SQLiteEngineStateRepo) SetSourceConnected(ctx context.Context, connected bool) error {
	query := `INSERT INTO engine_state (id, source_connected) VALUES ('default', ?)
		ON CONFLICT(id) DO UPDATE SET source_connected = excluded.source_connected`
	if _, err := r.db.ExecContext(ctx, query, boolToInt(connected)); err != nil {
		return fmt.Errorf("setting source connectivity: %w", err)
	}
	return nil
}
