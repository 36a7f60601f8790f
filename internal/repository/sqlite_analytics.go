package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/db"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
)

// SQLiteAnalyticsRepo implements AnalyticsRepo using a SQLite database.
// The log is write-only from the engine's perspective; List exists for
// offline tuning and tests.
type SQLiteAnalyticsRepo struct {
	db db.DBTX
}

// NewSQLiteAnalyticsRepo creates a new SQLiteAnalyticsRepo.
func NewSQLiteAnalyticsRepo(conn db.DBTX) *SQLiteAnalyticsRepo {
	return &SQLiteAnalyticsRepo{db: conn}
}

func (r *SQLiteAnalyticsRepo) Append(ctx context.Context, e *domain.AnalyticsEvent) error {
	query := `INSERT INTO analytics_events (id, recommendation_id, scenario, type, action, option_key, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.RecommendationID,
		string(e.Scenario),
		string(e.Type),
		string(e.Action),
		nullableStringToValue(e.OptionKey),
		e.OccurredAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting analytics event: %w", err)
	}
	return nil
}

func (r *SQLiteAnalyticsRepo) List(ctx context.Context, limit int) ([]domain.AnalyticsEvent, error) {
	query := `SELECT id, recommendation_id, scenario, type, action, option_key, occurred_at
		FROM analytics_events ORDER BY occurred_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing analytics events: %w", err)
	}
	defer rows.Close()

	var events []domain.AnalyticsEvent
	for rows.Next() {
		var e domain.AnalyticsEvent
		var scenario, recType, action, occurredStr string
		var optionKey sql.NullString
		if err := rows.Scan(&e.ID, &e.RecommendationID, &scenario, &recType, &action, &optionKey, &occurredStr); err != nil {
			return nil, fmt.Errorf("scanning analytics event: %w", err)
		}
		e.Scenario = domain.ScenarioTag(scenario)
		e.Type = domain.RecommendationType(recType)
		e.Action = domain.AnalyticsAction(action)
		if optionKey.Valid {
			k := optionKey.String
			e.OptionKey = &k
		}
		if e.OccurredAt, err = time.Parse(time.RFC3339, occurredStr); err != nil {
			return nil, fmt.Errorf("parsing occurred_at: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analytics events: %w", err)
	}
	return events, nil
}

func (r *SQLiteAnalyticsRepo) Prune(ctx context.Context, keep int) (int, error) {
	query := `DELETE FROM analytics_events WHERE id NOT IN (
		SELECT id FROM analytics_events ORDER BY occurred_at DESC LIMIT ?)`
	res, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning analytics events: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
