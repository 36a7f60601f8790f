package service

import (
	"context"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/contract"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
)

// AdvisorService is the single entry point to the adaptive coaching
// engine: run an analysis pass, read the resulting recommendations, and
// act on them. Every method is safe to call repeatedly.
type AdvisorService interface {
	// Analyze runs one full pass. It returns (nil, nil) when a no-op gate
	// stops the pass: advisor disabled, rate limit (unless force), no
	// active plan, or insufficient synced data (force does not help).
	Analyze(ctx context.Context, force bool) (*contract.AnalysisResult, error)

	ActiveRecommendations(ctx context.Context) ([]*domain.Recommendation, error)
	AllRecommendations(ctx context.Context) ([]*domain.Recommendation, error)

	// Dismiss acknowledges a recommendation without acting on it.
	Dismiss(ctx context.Context, id string) error
	// Accept selects one option. For apply_modification options it mutates
	// the plan and returns the applied modification; for dismiss options
	// it returns nil.
	Accept(ctx context.Context, id, optionKey string) (*domain.PlanModification, error)

	// Undo reverses an applied modification. It is idempotent: unknown or
	// already-undone IDs return (false, nil).
	Undo(ctx context.Context, modificationID string) (bool, error)
	LastModification(ctx context.Context) (*domain.PlanModification, error)

	BadgeCount(ctx context.Context) (int, error)
	// ExpireStale sweeps active recommendations past their horizon,
	// returning how many were expired.
	ExpireStale(ctx context.Context) (int, error)
}

// PlanService covers the thin collaborator surface the engine reads
// from: plan import, synced runs, auxiliary scores, and preferences.
type PlanService interface {
	ImportPlan(ctx context.Context, filePath string) (*domain.Plan, error)
	ActivePlan(ctx context.Context) (*domain.Plan, error)
	LogRun(ctx context.Context, rec *domain.RunRecord) error
	SetScore(ctx context.Context, kind domain.ScoreKind, value int) error
	Preferences(ctx context.Context) (*domain.CoachPreferences, error)
	UpdatePreferences(ctx context.Context, p *domain.CoachPreferences) error
	WeeklyMileage(ctx context.Context, planID string) ([]domain.WeekMileage, error)
}
