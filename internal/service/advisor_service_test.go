package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/contract"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/repository"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/testutil"
)

var svcNow = time.Date(2026, 6, 10, 8, 0, 0, 0, time.UTC)

// harness wires a real advisor service over an in-memory database with a
// controllable clock.
type harness struct {
	svc     *advisorService
	plans   repository.PlanRepo
	records repository.RunRecordRepo
	scores  repository.ScoreRepo
	recs    repository.RecommendationRepo
	mods    repository.ModificationRepo
	events  repository.AnalyticsRepo
	prefs   repository.PreferencesRepo
	state   repository.EngineStateRepo
	now     time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	h := &harness{
		plans:   repository.NewSQLitePlanRepo(database),
		records: repository.NewSQLiteRunRecordRepo(database),
		scores:  repository.NewSQLiteScoreRepo(database),
		recs:    repository.NewSQLiteRecommendationRepo(database),
		mods:    repository.NewSQLiteModificationRepo(database),
		events:  repository.NewSQLiteAnalyticsRepo(database),
		prefs:   repository.NewSQLitePreferencesRepo(database),
		state:   repository.NewSQLiteEngineStateRepo(database),
		now:     svcNow,
	}
	svc := NewAdvisorService(
		testutil.NewTestUoW(database),
		h.plans, h.records, h.scores, h.recs, h.mods, h.events, h.prefs, h.state,
		zerolog.Nop(),
	).(*advisorService)
	svc.nowFunc = func() time.Time { return h.now }
	h.svc = svc
	return h
}

func (h *harness) advance(d time.Duration) {
	h.now = h.now.Add(d)
}

// seedBehindPlan sets up a 16-week plan in week 5 with no completed days,
// so missed key workouts and a zero recent completion rate fire the
// behind-schedule rule. Three recent synced runs clear the data floor.
func (h *harness) seedBehindPlan(t *testing.T) *domain.Plan {
	t.Helper()
	ctx := context.Background()
	plan := testutil.NewTestPlan("Marathon 16wk", testutil.Midnight(h.now, 35), 16)
	require.NoError(t, h.plans.Create(ctx, plan))
	require.NoError(t, h.plans.SetActive(ctx, plan.ID))
	for i, day := range []int{1, 2, 3} {
		planned := []float64{5, 6, 5}[i]
		syncedAt := h.now.Add(-time.Duration(i+1) * 24 * time.Hour)
		require.NoError(t, h.records.Create(ctx,
			testutil.NewTestRecord(plan.ID, 5, day, planned, planned, 9.5, syncedAt)))
	}
	return plan
}

func (h *harness) seedRec(t *testing.T, scenario domain.ScenarioTag, status domain.RecommendationStatus, createdAt time.Time, dismissible bool) *domain.Recommendation {
	t.Helper()
	rec := &domain.Recommendation{
		ID:          uuid.NewString(),
		Scenario:    scenario,
		Type:        domain.RecommendationUpgrade,
		Priority:    domain.PriorityMedium,
		Status:      status,
		Confidence:  50,
		Title:       "t",
		Message:     "m",
		Dismissible: dismissible,
		Options: []domain.RecommendationOption{
			{Key: "ok", Label: "OK", ActionType: domain.ActionDismiss},
		},
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(7 * 24 * time.Hour),
	}
	require.NoError(t, h.recs.Create(context.Background(), rec))
	return rec
}

func TestAnalyze_BehindScheduleEmits(t *testing.T) {
	h := newHarness(t)
	h.seedBehindPlan(t)
	ctx := context.Background()

	res, err := h.svc.Analyze(ctx, false)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 5, res.CurrentWeek)

	require.Len(t, res.Emitted, 1)
	rec := res.Emitted[0]
	assert.Equal(t, domain.ScenarioBehindSchedule, rec.Scenario)
	assert.Equal(t, domain.PriorityHigh, rec.Priority)
	// 35 for missed key workouts plus 30 for the recent completion rate.
	assert.Equal(t, 65, rec.Confidence)
	assert.True(t, rec.ExpiresAt.Equal(h.now.Add(5*24*time.Hour)))

	opt := rec.Option("reduce_20")
	require.NotNil(t, opt)
	require.Len(t, opt.Modification.Adjustments, 2)
	assert.Equal(t, 6, opt.Modification.Adjustments[0].WeekIndex)
	assert.Equal(t, 7, opt.Modification.Adjustments[1].WeekIndex)

	require.Len(t, res.Active, 1)
	last, err := h.state.LastAnalysisAt(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, last.Equal(h.now))
}

func TestAnalyze_DisabledPreferences(t *testing.T) {
	h := newHarness(t)
	h.seedBehindPlan(t)
	ctx := context.Background()

	require.NoError(t, h.prefs.Upsert(ctx, &domain.CoachPreferences{
		Enabled:        false,
		Frequency:      domain.FrequencyDaily,
		Aggressiveness: domain.AggressivenessBalanced,
	}))

	res, err := h.svc.Analyze(ctx, true)
	require.NoError(t, err)
	assert.Nil(t, res, "disabled engine never analyzes, even forced")
}

func TestAnalyze_NoActivePlan(t *testing.T) {
	h := newHarness(t)
	res, err := h.svc.Analyze(context.Background(), true)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestAnalyze_DataFloorNotBypassedByForce(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	// A five-week-old plan with nothing ever synced.
	plan := testutil.NewTestPlan("Stale", testutil.Midnight(h.now, 35), 16)
	require.NoError(t, h.plans.Create(ctx, plan))
	require.NoError(t, h.plans.SetActive(ctx, plan.ID))

	res, err := h.svc.Analyze(ctx, true)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestAnalyze_DailyRateFloor(t *testing.T) {
	h := newHarness(t)
	h.seedBehindPlan(t)
	ctx := context.Background()

	res, err := h.svc.Analyze(ctx, false)
	require.NoError(t, err)
	require.NotNil(t, res)

	h.advance(10 * time.Hour)
	res, err = h.svc.Analyze(ctx, false)
	require.NoError(t, err)
	assert.Nil(t, res, "10h is inside the 20h floor")

	res, err = h.svc.Analyze(ctx, true)
	require.NoError(t, err)
	assert.NotNil(t, res, "force bypasses the rate floor")

	// The forced pass moved the floor; 21h past it clears naturally.
	h.advance(21 * time.Hour)
	res, err = h.svc.Analyze(ctx, false)
	require.NoError(t, err)
	assert.NotNil(t, res)
}

func TestAnalyze_WeeklyRateFloor(t *testing.T) {
	h := newHarness(t)
	h.seedBehindPlan(t)
	ctx := context.Background()

	require.NoError(t, h.prefs.Upsert(ctx, &domain.CoachPreferences{
		Enabled:        true,
		Frequency:      domain.FrequencyWeekly,
		Aggressiveness: domain.AggressivenessBalanced,
	}))

	res, err := h.svc.Analyze(ctx, false)
	require.NoError(t, err)
	require.NotNil(t, res)

	h.advance(30 * time.Hour)
	res, err = h.svc.Analyze(ctx, false)
	require.NoError(t, err)
	assert.Nil(t, res, "30h is inside the 144h weekly floor")

	h.advance(115 * time.Hour)
	res, err = h.svc.Analyze(ctx, false)
	require.NoError(t, err)
	assert.NotNil(t, res)
}

func TestAnalyze_DuplicateScenarioSuppressed(t *testing.T) {
	h := newHarness(t)
	h.seedBehindPlan(t)
	ctx := context.Background()

	res, err := h.svc.Analyze(ctx, false)
	require.NoError(t, err)
	require.Len(t, res.Emitted, 1)

	res, err = h.svc.Analyze(ctx, true)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Empty(t, res.Emitted)
	assert.Equal(t, "duplicate_scenario", res.Suppressed[domain.ScenarioBehindSchedule])
}

func TestAnalyze_TaperLock(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	// Race week of a two-week plan, with plenty of missed workouts behind.
	plan := testutil.NewTestPlan("Sprint", testutil.Midnight(h.now, 21), 2)
	require.NoError(t, h.plans.Create(ctx, plan))
	require.NoError(t, h.plans.SetActive(ctx, plan.ID))
	for i, day := range []int{1, 2, 3} {
		planned := []float64{5, 6, 5}[i]
		require.NoError(t, h.records.Create(ctx,
			testutil.NewTestRecord(plan.ID, 1, day, planned, planned, 9.5, h.now.Add(-time.Duration(i+1)*24*time.Hour))))
	}

	res, err := h.svc.Analyze(ctx, false)
	require.NoError(t, err)
	require.NotNil(t, res)

	require.Len(t, res.Emitted, 1)
	rec := res.Emitted[0]
	assert.Equal(t, domain.ScenarioRaceWeekOptimization, rec.Scenario)
	// No future weeks remain, so only the no-change option survives.
	assert.Nil(t, rec.Option("sharpen_taper"))
	assert.NotNil(t, rec.Option("trust_plan"))

	assert.Equal(t, "taper_lock", res.Suppressed[domain.ScenarioBehindSchedule])
}

func TestAnalyze_ActiveCap(t *testing.T) {
	h := newHarness(t)
	h.seedBehindPlan(t)
	ctx := context.Background()

	for _, sc := range []domain.ScenarioTag{
		domain.ScenarioAheadOfSchedule,
		domain.ScenarioInconsistentExec,
		domain.ScenarioRaceWeekOptimization,
	} {
		h.seedRec(t, sc, domain.StatusActive, h.now.Add(-time.Hour), true)
	}

	res, err := h.svc.Analyze(ctx, true)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Empty(t, res.Emitted)
	assert.Equal(t, "active_cap", res.Suppressed[domain.ScenarioBehindSchedule])
	assert.Len(t, res.Active, 3)
}

// seedInconsistentPlan sets up a plan whose only detectable scenario is
// inconsistent execution, a medium-priority card subject to spacing.
func (h *harness) seedInconsistentPlan(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	plan := testutil.NewTestPlan("Marathon 16wk", testutil.Midnight(h.now, 35), 16)
	for w := 0; w < 5; w++ {
		for d := range plan.Weeks[w].Days {
			plan.Weeks[w].Days[d].Completed = true
		}
	}
	require.NoError(t, h.plans.Create(ctx, plan))
	require.NoError(t, h.plans.SetActive(ctx, plan.ID))

	// Last week ran to plan on distance, but the easy days went out at
	// 8:00/mi, under the 8:30 easy ceiling.
	runs := []struct {
		day     int
		planned float64
		pace    float64
	}{
		{1, 5, 8.0}, {2, 6, 9.5}, {3, 5, 8.0}, {5, 5, 9.5}, {6, 10, 9.5},
	}
	for i, r := range runs {
		syncedAt := h.now.Add(-time.Duration(i+2) * 24 * time.Hour)
		require.NoError(t, h.records.Create(ctx,
			testutil.NewTestRecord(plan.ID, 4, r.day, r.planned, r.planned, r.pace, syncedAt)))
	}
}

func TestAnalyze_SpacingSuppressesNonHighPriority(t *testing.T) {
	h := newHarness(t)
	h.seedInconsistentPlan(t)
	ctx := context.Background()

	// An active card created an hour ago holds back non-urgent ones.
	h.seedRec(t, domain.ScenarioRaceWeekOptimization, domain.StatusActive, h.now.Add(-time.Hour), true)

	res, err := h.svc.Analyze(ctx, true)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Empty(t, res.Emitted)
	assert.Equal(t, "spacing", res.Suppressed[domain.ScenarioInconsistentExec])
}

func TestAnalyze_SpacingClearsAfter72Hours(t *testing.T) {
	h := newHarness(t)
	h.seedInconsistentPlan(t)
	ctx := context.Background()

	h.seedRec(t, domain.ScenarioRaceWeekOptimization, domain.StatusActive, h.now.Add(-100*time.Hour), true)

	res, err := h.svc.Analyze(ctx, true)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Emitted, 1)
	assert.Equal(t, domain.ScenarioInconsistentExec, res.Emitted[0].Scenario)
	assert.Equal(t, domain.PriorityMedium, res.Emitted[0].Priority)
}

func TestAnalyze_SpacingIgnoresResolvedCards(t *testing.T) {
	h := newHarness(t)
	h.seedInconsistentPlan(t)
	ctx := context.Background()

	// A dismissed card, however recent, anchors no spacing window.
	h.seedRec(t, domain.ScenarioRaceWeekOptimization, domain.StatusDismissed, h.now.Add(-time.Hour), true)

	res, err := h.svc.Analyze(ctx, true)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Emitted, 1)
	assert.Equal(t, domain.ScenarioInconsistentExec, res.Emitted[0].Scenario)
	assert.NotContains(t, res.Suppressed, domain.ScenarioInconsistentExec)
}

func TestDismiss(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rec := h.seedRec(t, domain.ScenarioAheadOfSchedule, domain.StatusActive, h.now, true)

	require.NoError(t, h.svc.Dismiss(ctx, rec.ID))

	got, err := h.recs.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDismissed, got.Status)

	events, err := h.events.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.AnalyticsDismissed, events[0].Action)
	assert.Equal(t, rec.ID, events[0].RecommendationID)
}

func TestDismiss_NotDismissible(t *testing.T) {
	h := newHarness(t)
	rec := h.seedRec(t, domain.ScenarioOvertraining, domain.StatusActive, h.now, false)

	err := h.svc.Dismiss(context.Background(), rec.ID)
	var aerr *contract.AnalysisError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, contract.ErrNotActionable, aerr.Code)
}

func TestDismiss_UnknownID(t *testing.T) {
	h := newHarness(t)
	err := h.svc.Dismiss(context.Background(), "nope")
	var aerr *contract.AnalysisError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, contract.ErrRecommendationNotFound, aerr.Code)
}

func TestBadgeCountAndExpireStale(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	stale := h.seedRec(t, domain.ScenarioAheadOfSchedule, domain.StatusActive, h.now.Add(-8*24*time.Hour), true)
	fresh := h.seedRec(t, domain.ScenarioInconsistentExec, domain.StatusActive, h.now, true)

	n, err := h.svc.BadgeCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "past-expiry cards never count toward the badge")

	expired, err := h.svc.ExpireStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	got, err := h.recs.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExpired, got.Status)
	got, err = h.recs.GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, got.Status)

	events, err := h.events.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.AnalyticsExpired, events[0].Action)
}
