package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/db"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
)

// SQLitePreferencesRepo implements PreferencesRepo using a SQLite
// database. There is a single preferences row per profile database.
type SQLitePreferencesRepo struct {
	db db.DBTX
}

// NewSQLitePreferencesRepo creates a new SQLitePreferencesRepo.
func NewSQLitePreferencesRepo(conn db.DBTX) *SQLitePreferencesRepo {
	return &SQLitePreferencesRepo{db: conn}
}

func (r *SQLitePreferencesRepo) Get(ctx context.Context) (*domain.CoachPreferences, error) {
	query := `SELECT enabled, frequency, aggressiveness FROM coach_preferences WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	var p domain.CoachPreferences
	var enabled int
	var frequency, aggressiveness string
	err := row.Scan(&enabled, &frequency, &aggressiveness)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("coach preferences: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning coach preferences: %w", err)
	}
	p.Enabled = intToBool(enabled)
	p.Frequency = domain.AnalysisFrequency(frequency)
	p.Aggressiveness = domain.Aggressiveness(aggressiveness)
	return &p, nil
}

func (r *SQLitePreferencesRepo) Upsert(ctx context.Context, p *domain.CoachPreferences) error {
	query := `INSERT OR REPLACE INTO coach_preferences (id, enabled, frequency, aggressiveness)
		VALUES ('default', ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		boolToInt(p.Enabled), string(p.Frequency), string(p.Aggressiveness))
	if err != nil {
		return fmt.Errorf("upserting coach preferences: %w", err)
	}
	return nil
}
