package repository

import (
	"context"
	"time"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
)

type PlanRepo interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	GetActive(ctx context.Context) (*domain.Plan, error)
	SetActive(ctx context.Context, id string) error
	UpdateWeek(ctx context.Context, planID string, week domain.PlanWeek) error
	MarkDayCompleted(ctx context.Context, planID string, weekIndex, dayIndex int) error
	WeeklyMileage(ctx context.Context, planID string) ([]domain.WeekMileage, error)
}

type RunRecordRepo interface {
	Create(ctx context.Context, r *domain.RunRecord) error
	ListByPlan(ctx context.Context, planID string) ([]domain.RunRecord, error)
	LatestSyncedAt(ctx context.Context, planID string) (*time.Time, error)
}

type ScoreRepo interface {
	Record(ctx context.Context, kind domain.ScoreKind, value int, at time.Time) error
	Latest(ctx context.Context, kind domain.ScoreKind) (int, error)
}

type RecommendationRepo interface {
	Create(ctx context.Context, rec *domain.Recommendation) error
	GetByID(ctx context.Context, id string) (*domain.Recommendation, error)
	List(ctx context.Context) ([]*domain.Recommendation, error)
	ListActive(ctx context.Context) ([]*domain.Recommendation, error)
	Update(ctx context.Context, rec *domain.Recommendation) error
	// Prune evicts the oldest recommendations beyond keep, regardless of
	// status, returning how many were removed.
	Prune(ctx context.Context, keep int) (int, error)
}

type ModificationRepo interface {
	Create(ctx context.Context, m *domain.PlanModification) error
	GetByID(ctx context.Context, id string) (*domain.PlanModification, error)
	List(ctx context.Context) ([]*domain.PlanModification, error)
	Update(ctx context.Context, m *domain.PlanModification) error
	// LatestApplied returns the most recent non-undone modification.
	LatestApplied(ctx context.Context) (*domain.PlanModification, error)
}

type AnalyticsRepo interface {
	Append(ctx context.Context, e *domain.AnalyticsEvent) error
	List(ctx context.Context, limit int) ([]domain.AnalyticsEvent, error)
	Prune(ctx context.Context, keep int) (int, error)
}

type PreferencesRepo interface {
	Get(ctx context.Context) (*domain.CoachPreferences, error)
	Upsert(ctx context.Context, p *domain.CoachPreferences) error
}

type EngineStateRepo interface {
	LastAnalysisAt(ctx context.Context) (*time.Time, error)
	SetLastAnalysisAt(ctx context.Context, at time.Time) error
	SourceConnected(ctx context.Context) (bool, error)
	SetSourceConnected(ctx context.Context, connected bool) error
}
