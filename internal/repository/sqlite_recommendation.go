package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/db"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
)

// SQLiteRecommendationRepo implements RecommendationRepo using a SQLite
// database. Options are nested documents (1-3 per recommendation, each
// possibly carrying a modification template), so they are stored as one
// JSON column rather than flattened into rows.
type SQLiteRecommendationRepo struct {
	db db.DBTX
}

// NewSQLiteRecommendationRepo creates a new SQLiteRecommendationRepo.
func NewSQLiteRecommendationRepo(conn db.DBTX) *SQLiteRecommendationRepo {
	return &SQLiteRecommendationRepo{db: conn}
}

const recommendationColumns = `id, scenario, type, priority, status, confidence,
	title, message, reasoning, options_json, dismissible, created_at, expires_at, selected_option_key`

func (r *SQLiteRecommendationRepo) Create(ctx context.Context, rec *domain.Recommendation) error {
	optionsJSON, err := json.Marshal(rec.Options)
	if err != nil {
		return fmt.Errorf("encoding options: %w", err)
	}
	query := `INSERT INTO recommendations (` + recommendationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		string(rec.Scenario),
		string(rec.Type),
		string(rec.Priority),
		string(rec.Status),
		rec.Confidence,
		rec.Title,
		rec.Message,
		rec.Reasoning,
		string(optionsJSON),
		boolToInt(rec.Dismissible),
		rec.CreatedAt.Format(time.RFC3339),
		rec.ExpiresAt.Format(time.RFC3339),
		nullableStringToValue(rec.SelectedOptionKey),
	)
	if err != nil {
		return fmt.Errorf("inserting recommendation: %w", err)
	}
	return nil
}

func (r *SQLiteRecommendationRepo) GetByID(ctx context.Context, id string) (*domain.Recommendation, error) {
	query := `SELECT ` + recommendationColumns + ` FROM recommendations WHERE id = ?`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("querying recommendation: %w", err)
	}
	defer rows.Close()

	recs, err := r.scanRecommendations(rows)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("recommendation %s: %w", id, ErrNotFound)
	}
	return recs[0], nil
}

func (r *SQLiteRecommendationRepo) List(ctx context.Context) ([]*domain.Recommendation, error) {
	query := `SELECT ` + recommendationColumns + ` FROM recommendations ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing recommendations: %w", err)
	}
	defer rows.Close()
	return r.scanRecommendations(rows)
}

func (r *SQLiteRecommendationRepo) ListActive(ctx context.Context) ([]*domain.Recommendation, error) {
	query := `SELECT ` + recommendationColumns + ` FROM recommendations
		WHERE status = 'active' ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing active recommendations: %w", err)
	}
	defer rows.Close()
	return r.scanRecommendations(rows)
}

func (r *SQLiteRecommendationRepo) Update(ctx context.Context, rec *domain.Recommendation) error {
	optionsJSON, err := json.Marshal(rec.Options)
	if err != nil {
		return fmt.Errorf("encoding options: %w", err)
	}
	query := `UPDATE recommendations SET scenario = ?, type = ?, priority = ?, status = ?,
		confidence = ?, title = ?, message = ?, reasoning = ?, options_json = ?,
		dismissible = ?, expires_at = ?, selected_option_key = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(rec.Scenario),
		string(rec.Type),
		string(rec.Priority),
		string(rec.Status),
		rec.Confidence,
		rec.Title,
		rec.Message,
		rec.Reasoning,
		string(optionsJSON),
		boolToInt(rec.Dismissible),
		rec.ExpiresAt.Format(time.RFC3339),
		nullableStringToValue(rec.SelectedOptionKey),
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("updating recommendation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("recommendation %s: %w", rec.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteRecommendationRepo) Prune(ctx context.Context, keep int) (int, error) {
	query := `DELETE FROM recommendations WHERE id NOT IN (
		SELECT id FROM recommendations ORDER BY created_at DESC LIMIT ?)`
	res, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning recommendations: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r *SQLiteRecommendationRepo) scanRecommendations(rows *sql.Rows) ([]*domain.Recommendation, error) {
	var recs []*domain.Recommendation
	for rows.Next() {
		var rec domain.Recommendation
		var scenario, recType, priority, status, optionsJSON, createdStr, expiresStr string
		var dismissible int
		var selectedKey sql.NullString

		err := rows.Scan(
			&rec.ID, &scenario, &recType, &priority, &status, &rec.Confidence,
			&rec.Title, &rec.Message, &rec.Reasoning, &optionsJSON,
			&dismissible, &createdStr, &expiresStr, &selectedKey,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning recommendation: %w", err)
		}

		rec.Scenario = domain.ScenarioTag(scenario)
		rec.Type = domain.RecommendationType(recType)
		rec.Priority = domain.Priority(priority)
		rec.Status = domain.RecommendationStatus(status)
		rec.Dismissible = intToBool(dismissible)
		if selectedKey.Valid {
			k := selectedKey.String
			rec.SelectedOptionKey = &k
		}

		if err := json.Unmarshal([]byte(optionsJSON), &rec.Options); err != nil {
			return nil, fmt.Errorf("decoding options: %w", err)
		}
		if rec.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		if rec.ExpiresAt, err = time.Parse(time.RFC3339, expiresStr); err != nil {
			return nil, fmt.Errorf("parsing expires_at: %w", err)
		}

		recs = append(recs, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recommendations: %w", err)
	}
	return recs, nil
}
