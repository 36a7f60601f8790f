package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/testutil"
)

func testRecommendation(createdAt time.Time) *domain.Recommendation {
	m := 0.8
	return &domain.Recommendation{
		ID:         uuid.NewString(),
		Scenario:   domain.ScenarioBehindSchedule,
		Type:       domain.RecommendationReduce,
		Priority:   domain.PriorityHigh,
		Status:     domain.StatusActive,
		Confidence: 70,
		Title:      "Training has fallen behind plan",
		Message:    "Trim volume to rebuild consistency.",
		Reasoning:  "3 key workouts missed",
		Options: []domain.RecommendationOption{
			{
				Key: "reduce_20", Label: "Reduce mileage 20%", Description: "Scale down",
				Impact: "-20% for 2 weeks", ActionType: domain.ActionApplyModification,
				Modification: &domain.PlanModification{
					Description: "Reduce weekly mileage 20%",
					Type:        domain.ModMileageReduction,
					Adjustments: []domain.WeekAdjustment{
						{WeekIndex: 6, Multiplier: &m},
						{WeekIndex: 7, Multiplier: &m},
					},
				},
			},
			{Key: "keep_plan", Label: "Keep the plan", Description: "Stay on schedule", ActionType: domain.ActionDismiss},
		},
		Dismissible: true,
		CreatedAt:   createdAt,
		ExpiresAt:   createdAt.Add(5 * 24 * time.Hour),
	}
}

func TestRecommendationRepo_RoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRecommendationRepo(database)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	rec := testRecommendation(now)
	require.NoError(t, repo.Create(ctx, rec))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Scenario, got.Scenario)
	assert.Equal(t, rec.Options, got.Options, "options survive the JSON column")
	assert.True(t, got.CreatedAt.Equal(rec.CreatedAt))
	assert.True(t, got.ExpiresAt.Equal(rec.ExpiresAt))
	assert.Nil(t, got.SelectedOptionKey)

	key := "reduce_20"
	got.SelectedOptionKey = &key
	require.NoError(t, got.Transition(domain.StatusAccepted))
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, again.Status)
	require.NotNil(t, again.SelectedOptionKey)
	assert.Equal(t, "reduce_20", *again.SelectedOptionKey)
}

func TestRecommendationRepo_ListActive(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRecommendationRepo(database)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	active := testRecommendation(now)
	dismissed := testRecommendation(now.Add(-time.Hour))
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, dismissed.Transition(domain.StatusDismissed))
	require.NoError(t, repo.Create(ctx, dismissed))

	list, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRecommendationRepo_PruneKeepsNewest(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRecommendationRepo(database)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second).Add(-time.Hour)
	var ids []string
	for i := 0; i < 8; i++ {
		rec := testRecommendation(base.Add(time.Duration(i) * time.Minute))
		require.NoError(t, repo.Create(ctx, rec))
		ids = append(ids, rec.ID)
	}

	removed, err := repo.Prune(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	// The oldest three are gone.
	for _, rec := range all {
		assert.NotContains(t, ids[:3], rec.ID)
	}
}

func TestModificationRepo_RoundTripAndLatest(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteModificationRepo(database)
	recs := NewSQLiteRecommendationRepo(database)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	rec := testRecommendation(now)
	require.NoError(t, recs.Create(ctx, rec))

	m := 0.8
	newMod := func(appliedAt time.Time) *domain.PlanModification {
		return &domain.PlanModification{
			ID:               uuid.NewString(),
			RecommendationID: rec.ID,
			Description:      "Reduce weekly mileage 20%",
			Type:             domain.ModMileageReduction,
			Adjustments:      []domain.WeekAdjustment{{WeekIndex: 6, Multiplier: &m}},
			Snapshots: []domain.WeekSnapshot{{
				WeekIndex: 6,
				Days:      testutil.NewTestWeek(6).Days,
			}},
			AppliedAt: appliedAt,
		}
	}

	older := newMod(now.Add(-time.Hour))
	newer := newMod(now)
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	got, err := repo.GetByID(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, older.Adjustments, got.Adjustments)
	assert.Equal(t, older.Snapshots, got.Snapshots, "snapshots survive the JSON column")

	latest, err := repo.LatestApplied(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)

	// Undoing the newest makes the older one latest.
	newer.Undone = true
	require.NoError(t, repo.Update(ctx, newer))
	latest, err = repo.LatestApplied(ctx)
	require.NoError(t, err)
	assert.Equal(t, older.ID, latest.ID)
}

func TestAnalyticsRepo_AppendAndPrune(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteAnalyticsRepo(database)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second).Add(-time.Hour)
	for i := 0; i < 6; i++ {
		key := fmt.Sprintf("opt_%d", i)
		require.NoError(t, repo.Append(ctx, &domain.AnalyticsEvent{
			ID:               uuid.NewString(),
			RecommendationID: "rec-1",
			Scenario:         domain.ScenarioOvertraining,
			Type:             domain.RecommendationRest,
			Action:           domain.AnalyticsAccepted,
			OptionKey:        &key,
			OccurredAt:       base.Add(time.Duration(i) * time.Minute),
		}))
	}

	removed, err := repo.Prune(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	events, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 4)
	// Newest first, oldest two evicted.
	assert.Equal(t, "opt_5", *events[0].OptionKey)
	assert.Equal(t, "opt_2", *events[3].OptionKey)
}

func TestPreferencesRepo_DefaultsThenUpsert(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePreferencesRepo(database)
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	p := domain.DefaultPreferences()
	p.Frequency = domain.FrequencyWeekly
	require.NoError(t, repo.Upsert(ctx, &p))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, *got)

	p.Aggressiveness = domain.AggressivenessConservative
	require.NoError(t, repo.Upsert(ctx, &p))
	got, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.AggressivenessConservative, got.Aggressiveness)
}

func TestEngineStateRepo(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEngineStateRepo(database)
	ctx := context.Background()

	last, err := repo.LastAnalysisAt(ctx)
	require.NoError(t, err)
	assert.Nil(t, last)

	connected, err := repo.SourceConnected(ctx)
	require.NoError(t, err)
	assert.False(t, connected)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.SetLastAnalysisAt(ctx, now))
	require.NoError(t, repo.SetSourceConnected(ctx, true))

	last, err = repo.LastAnalysisAt(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, last.Equal(now))

	connected, err = repo.SourceConnected(ctx)
	require.NoError(t, err)
	assert.True(t, connected)
}
