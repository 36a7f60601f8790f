package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/db"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
	"github.com/google/uuid"
)

// SQLiteScoreRepo implements ScoreRepo using a SQLite database.
type SQLiteScoreRepo struct {
	db db.DBTX
}

// NewSQLiteScoreRepo creates a new SQLiteScoreRepo.
func NewSQLiteScoreRepo(conn db.DBTX) *SQLiteScoreRepo {
	return &SQLiteScoreRepo{db: conn}
}

func (r *SQLiteScoreRepo) Record(ctx context.Context, kind domain.ScoreKind, value int, at time.Time) error {
	query := `INSERT INTO scores (id, kind, value, recorded_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, uuid.NewString(), string(kind), value, at.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting %s score: %w", kind, err)
	}
	return nil
}

func (r *SQLiteScoreRepo) Latest(ctx context.Context, kind domain.ScoreKind) (int, error) {
	query := `SELECT value FROM scores WHERE kind = ? ORDER BY recorded_at DESC LIMIT 1`
	var value int
	err := r.db.QueryRowContext(ctx, query, string(kind)).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("%s score: %w", kind, ErrNotFound)
		}
		return 0, fmt.Errorf("querying %s score: %w", kind, err)
	}
	return value, nil
}
