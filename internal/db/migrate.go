package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and the
// whole list re-runs on every startup.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		start_date  TEXT NOT NULL,
		total_weeks INTEGER NOT NULL CHECK(total_weeks > 0),
		active      INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plan_days (
		plan_id    TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		week_index INTEGER NOT NULL,
		day_index  INTEGER NOT NULL,
		type       TEXT NOT NULL CHECK(type IN ('run','rest','cross')),
		label      TEXT NOT NULL DEFAULT '',
		distance   REAL NOT NULL DEFAULT 0,
		note       TEXT NOT NULL DEFAULT '',
		completed  INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (plan_id, week_index, day_index)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_days_week ON plan_days(plan_id, week_index)`,

	`CREATE TABLE IF NOT EXISTS run_records (
		id               TEXT PRIMARY KEY,
		plan_id          TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		week_index       INTEGER NOT NULL,
		day_index        INTEGER NOT NULL,
		planned_distance REAL NOT NULL DEFAULT 0,
		actual_distance  REAL NOT NULL DEFAULT 0,
		actual_pace      REAL NOT NULL DEFAULT 0,
		moving_time_sec  INTEGER NOT NULL DEFAULT 0,
		synced_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_run_records_plan ON run_records(plan_id, synced_at)`,

	`CREATE TABLE IF NOT EXISTS scores (
		id          TEXT PRIMARY KEY,
		kind        TEXT NOT NULL CHECK(kind IN ('readiness','adherence')),
		value       INTEGER NOT NULL CHECK(value BETWEEN 0 AND 100),
		recorded_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_scores_kind ON scores(kind, recorded_at)`,

	`CREATE TABLE IF NOT EXISTS recommendations (
		id           TEXT PRIMARY KEY,
		scenario     TEXT NOT NULL,
		type         TEXT NOT NULL,
		priority     TEXT NOT NULL CHECK(priority IN ('high','medium','low')),
		status       TEXT NOT NULL DEFAULT 'active'
		             CHECK(status IN ('active','dismissed','accepted','expired')),
		confidence   INTEGER NOT NULL DEFAULT 0,
		title        TEXT NOT NULL,
		message      TEXT NOT NULL,
		reasoning    TEXT NOT NULL DEFAULT '',
		options_json TEXT NOT NULL DEFAULT '[]',
		dismissible  INTEGER NOT NULL DEFAULT 1,
		created_at   TEXT NOT NULL,
		expires_at   TEXT NOT NULL,
		selected_option_key TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_recommendations_status ON recommendations(status, created_at)`,

	`CREATE TABLE IF NOT EXISTS plan_modifications (
		id                TEXT PRIMARY KEY,
		recommendation_id TEXT NOT NULL REFERENCES recommendations(id),
		description       TEXT NOT NULL,
		type              TEXT NOT NULL,
		adjustments_json  TEXT NOT NULL DEFAULT '[]',
		snapshots_json    TEXT NOT NULL DEFAULT '[]',
		applied_at        TEXT NOT NULL,
		undone            INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_modifications_applied ON plan_modifications(applied_at)`,

	`CREATE TABLE IF NOT EXISTS analytics_events (
		id                TEXT PRIMARY KEY,
		recommendation_id TEXT NOT NULL,
		scenario          TEXT NOT NULL,
		type              TEXT NOT NULL,
		action            TEXT NOT NULL CHECK(action IN ('accepted','dismissed','expired')),
		option_key        TEXT,
		occurred_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_analytics_events_time ON analytics_events(occurred_at)`,

	`CREATE TABLE IF NOT EXISTS coach_preferences (
		id             TEXT PRIMARY KEY,
		enabled        INTEGER NOT NULL DEFAULT 1,
		frequency      TEXT NOT NULL DEFAULT 'daily'
		               CHECK(frequency IN ('daily','weekly','before_key_workouts')),
		aggressiveness TEXT NOT NULL DEFAULT 'balanced'
		               CHECK(aggressiveness IN ('aggressive','balanced','conservative'))
	)`,

	`CREATE TABLE IF NOT EXISTS engine_state (
		id               TEXT PRIMARY KEY,
		last_analysis_at TEXT,
		source_connected INTEGER NOT NULL DEFAULT 0
	)`,
}
