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

// SQLiteModificationRepo implements ModificationRepo using a SQLite
// database. Adjustments and snapshots are nested documents and stored as
// JSON columns.
type SQLiteModificationRepo struct {
	db db.DBTX
}

// NewSQLiteModificationRepo creates a new SQLiteModificationRepo.
func NewSQLiteModificationRepo(conn db.DBTX) *SQLiteModificationRepo {
	return &SQLiteModificationRepo{db: conn}
}

const modificationColumns = `id, recommendation_id, description, type,
	adjustments_json, snapshots_json, applied_at, undone`

func (r *SQLiteModificationRepo) Create(ctx context.Context, m *domain.PlanModification) error {
	adjustmentsJSON, snapshotsJSON, err := encodeModification(m)
	if err != nil {
		return err
	}
	query := `INSERT INTO plan_modifications (` + modificationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		m.ID,
		m.RecommendationID,
		m.Description,
		string(m.Type),
		adjustmentsJSON,
		snapshotsJSON,
		m.AppliedAt.Format(time.RFC3339),
		boolToInt(m.Undone),
	)
	if err != nil {
		return fmt.Errorf("inserting plan modification: %w", err)
	}
	return nil
}

func (r *SQLiteModificationRepo) GetByID(ctx context.Context, id string) (*domain.PlanModification, error) {
	query := `SELECT ` + modificationColumns + ` FROM plan_modifications WHERE id = ?`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("querying plan modification: %w", err)
	}
	defer rows.Close()

	mods, err := r.scanModifications(rows)
	if err != nil {
		return nil, err
	}
	if len(mods) == 0 {
		return nil, fmt.Errorf("plan modification %s: %w", id, ErrNotFound)
	}
	return mods[0], nil
}

func (r *SQLiteModificationRepo) List(ctx context.Context) ([]*domain.PlanModification, error) {
	query := `SELECT ` + modificationColumns + ` FROM plan_modifications ORDER BY applied_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plan modifications: %w", err)
	}
	defer rows.Close()
	return r.scanModifications(rows)
}

func (r *SQLiteModificationRepo) Update(ctx context.Context, m *domain.PlanModification) error {
	adjustmentsJSON, snapshotsJSON, err := encodeModification(m)
	if err != nil {
		return err
	}
	query := `UPDATE plan_modifications SET description = ?, type = ?,
		adjustments_json = ?, snapshots_json = ?, undone = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		m.Description, string(m.Type), adjustmentsJSON, snapshotsJSON, boolToInt(m.Undone), m.ID)
	if err != nil {
		return fmt.Errorf("updating plan modification: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("plan modification %s: %w", m.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteModificationRepo) LatestApplied(ctx context.Context) (*domain.PlanModification, error) {
	query := `SELECT ` + modificationColumns + ` FROM plan_modifications
		WHERE undone = 0 ORDER BY applied_at DESC LIMIT 1`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying latest modification: %w", err)
	}
	defer rows.Close()

	mods, err := r.scanModifications(rows)
	if err != nil {
		return nil, err
	}
	if len(mods) == 0 {
		return nil, fmt.Errorf("latest modification: %w", ErrNotFound)
	}
	return mods[0], nil
}

func encodeModification(m *domain.PlanModification) (string, string, error) {
	adjustmentsJSON, err := json.Marshal(m.Adjustments)
	if err != nil {
		return "", "", fmt.Errorf("encoding adjustments: %w", err)
	}
	snapshotsJSON, err := json.Marshal(m.Snapshots)
	if err != nil {
		return "", "", fmt.Errorf("encoding snapshots: %w", err)
	}
	return string(adjustmentsJSON), string(snapshotsJSON), nil
}

func (r *SQLiteModificationRepo) scanModifications(rows *sql.Rows) ([]*domain.PlanModification, error) {
	var mods []*domain.PlanModification
	for rows.Next() {
		var m domain.PlanModification
		var modType, adjustmentsJSON, snapshotsJSON, appliedStr string
		var undone int

		err := rows.Scan(
			&m.ID, &m.RecommendationID, &m.Description, &modType,
			&adjustmentsJSON, &snapshotsJSON, &appliedStr, &undone,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning plan modification: %w", err)
		}

		m.Type = domain.ModificationType(modType)
		m.Undone = intToBool(undone)
		if err := json.Unmarshal([]byte(adjustmentsJSON), &m.Adjustments); err != nil {
			return nil, fmt.Errorf("decoding adjustments: %w", err)
		}
		if err := json.Unmarshal([]byte(snapshotsJSON), &m.Snapshots); err != nil {
			return nil, fmt.Errorf("decoding snapshots: %w", err)
		}
		if m.AppliedAt, err = time.Parse(time.RFC3339, appliedStr); err != nil {
			return nil, fmt.Errorf("parsing applied_at: %w", err)
		}

		mods = append(mods, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan modifications: %w", err)
	}
	return mods, nil
}
