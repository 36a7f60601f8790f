package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/db"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
)

// SQLitePlanRepo implements PlanRepo using a SQLite database.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	query := `INSERT INTO plans (id, name, start_date, total_weeks, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.StartDate.Format(time.RFC3339),
		p.TotalWeeks,
		boolToInt(p.Active),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}

	for _, w := range p.Weeks {
		for _, d := range w.Days {
			if err := r.insertDay(ctx, p.ID, w.Index, d); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *SQLitePlanRepo) insertDay(ctx context.Context, planID string, weekIndex int, d domain.PlanDay) error {
	query := `INSERT INTO plan_days (plan_id, week_index, day_index, type, label, distance, note, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		planID, weekIndex, d.DayIndex, string(d.Type), d.Label, d.Distance, d.Note, boolToInt(d.Completed),
	)
	if err != nil {
		return fmt.Errorf("inserting plan day %d/%d: %w", weekIndex, d.DayIndex, err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	query := `SELECT id, name, start_date, total_weeks, active, created_at, updated_at
		FROM plans WHERE id = ?`
	return r.scanPlan(ctx, r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLitePlanRepo) GetActive(ctx context.Context) (*domain.Plan, error) {
	query := `SELECT id, name, start_date, total_weeks, active, created_at, updated_at
		FROM plans WHERE active = 1 LIMIT 1`
	return r.scanPlan(ctx, r.db.QueryRowContext(ctx, query))
}

func (r *SQLitePlanRepo) SetActive(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE plans SET active = 0 WHERE active = 1`); err != nil {
		return fmt.Errorf("deactivating plans: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `UPDATE plans SET active = 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("activating plan: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateWeek replaces every day row of the given week with the week
// value's days. Modifications and undo both go through here.
func (r *SQLitePlanRepo) UpdateWeek(ctx context.Context, planID string, week domain.PlanWeek) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM plan_days WHERE plan_id = ? AND week_index = ?`, planID, week.Index); err != nil {
		return fmt.Errorf("clearing week %d: %w", week.Index, err)
	}
	for _, d := range week.Days {
		if err := r.insertDay(ctx, planID, week.Index, d); err != nil {
			return err
		}
	}
	if _, err := r.db.ExecContext(ctx, `UPDATE plans SET updated_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), planID); err != nil {
		return fmt.Errorf("touching plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) MarkDayCompleted(ctx context.Context, planID string, weekIndex, dayIndex int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE plan_days SET completed = 1 WHERE plan_id = ? AND week_index = ? AND day_index = ?`,
		planID, weekIndex, dayIndex)
	if err != nil {
		return fmt.Errorf("marking day completed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("plan day %d/%d: %w", weekIndex, dayIndex, ErrNotFound)
	}
	return nil
}

// WeeklyMileage summarizes planned run distance per week against actual
// synced distance.
func (r *SQLitePlanRepo) WeeklyMileage(ctx context.Context, planID string) ([]domain.WeekMileage, error) {
	query := `SELECT d.week_index,
			SUM(CASE WHEN d.type = 'run' THEN d.distance ELSE 0 END) AS planned,
			COALESCE((SELECT SUM(rr.actual_distance) FROM run_records rr
				WHERE rr.plan_id = d.plan_id AND rr.week_index = d.week_index), 0) AS actual
		FROM plan_days d
		WHERE d.plan_id = ?
		GROUP BY d.week_index
		ORDER BY d.week_index`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("summarizing weekly mileage: %w", err)
	}
	defer rows.Close()

	var out []domain.WeekMileage
	for rows.Next() {
		var m domain.WeekMileage
		if err := rows.Scan(&m.WeekIndex, &m.Planned, &m.Actual); err != nil {
			return nil, fmt.Errorf("scanning weekly mileage: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating weekly mileage: %w", err)
	}
	return out, nil
}

func (r *SQLitePlanRepo) scanPlan(ctx context.Context, row *sql.Row) (*domain.Plan, error) {
	var p domain.Plan
	var startStr, createdStr, updatedStr string
	var active int

	err := row.Scan(&p.ID, &p.Name, &startStr, &p.TotalWeeks, &active, &createdStr, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}
	p.Active = intToBool(active)

	if p.StartDate, err = time.Parse(time.RFC3339, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	if err := r.loadWeeks(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQLitePlanRepo) loadWeeks(ctx context.Context, p *domain.Plan) error {
	query := `SELECT week_index, day_index, type, label, distance, note, completed
		FROM plan_days WHERE plan_id = ? ORDER BY week_index, day_index`
	rows, err := r.db.QueryContext(ctx, query, p.ID)
	if err != nil {
		return fmt.Errorf("loading plan days: %w", err)
	}
	defer rows.Close()

	byWeek := map[int][]domain.PlanDay{}
	for rows.Next() {
		var weekIndex, completed int
		var d domain.PlanDay
		var dayType string
		if err := rows.Scan(&weekIndex, &d.DayIndex, &dayType, &d.Label, &d.Distance, &d.Note, &completed); err != nil {
			return fmt.Errorf("scanning plan day: %w", err)
		}
		d.Type = domain.DayType(dayType)
		d.Completed = intToBool(completed)
		byWeek[weekIndex] = append(byWeek[weekIndex], d)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating plan days: %w", err)
	}

	indices := make([]int, 0, len(byWeek))
	for idx := range byWeek {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	p.Weeks = make([]domain.PlanWeek, 0, len(indices))
	for _, idx := range indices {
		p.Weeks = append(p.Weeks, domain.PlanWeek{Index: idx, Days: byWeek[idx]})
	}
	return nil
}
