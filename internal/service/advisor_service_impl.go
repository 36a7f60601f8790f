package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/analysis"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/contract"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/db"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/repository"
)

// Lifecycle limits. These keep the advisor quiet enough to stay
// trusted: at most three cards at once, never the same scenario twice,
// and breathing room between non-urgent cards.
const (
	maxActiveRecommendations = 3
	recommendationStoreCap   = 50
	analyticsLogCap          = 200

	nonHighPrioritySpacing = 72 * time.Hour

	dailyAnalysisFloor  = 20 * time.Hour
	weeklyAnalysisFloor = 144 * time.Hour
)

type advisorService struct {
	uow     db.UnitOfWork
	plans   repository.PlanRepo
	recs    repository.RecommendationRepo
	mods    repository.ModificationRepo
	events  repository.AnalyticsRepo
	prefs   repository.PreferencesRepo
	state   repository.EngineStateRepo
	loader  *inputLoader
	log     zerolog.Logger
	nowFunc func() time.Time
}

// NewAdvisorService wires the coaching engine over the given
// repositories. All repositories must share the UnitOfWork's database.
func NewAdvisorService(
	uow db.UnitOfWork,
	plans repository.PlanRepo,
	records repository.RunRecordRepo,
	scores repository.ScoreRepo,
	recs repository.RecommendationRepo,
	mods repository.ModificationRepo,
	events repository.AnalyticsRepo,
	prefs repository.PreferencesRepo,
	state repository.EngineStateRepo,
	log zerolog.Logger,
) AdvisorService {
	return &advisorService{
		uow:    uow,
		plans:  plans,
		recs:   recs,
		mods:   mods,
		events: events,
		prefs:  prefs,
		state:  state,
		loader: &inputLoader{
			plans:   plans,
			records: records,
			scores:  scores,
			state:   state,
			log:     log,
		},
		log:     log,
		nowFunc: time.Now,
	}
}

func (s *advisorService) now() time.Time {
	return s.nowFunc()
}

func (s *advisorService) Analyze(ctx context.Context, force bool) (*contract.AnalysisResult, error) {
	now := s.now()

	prefs := s.preferences(ctx)
	if !prefs.Enabled {
		return nil, nil
	}

	// Rate floor is throttling, not correctness, so force bypasses it.
	if !force {
		ok, err := s.pastAnalysisFloor(ctx, prefs.Frequency, now)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
	}

	in, err := s.loader.Load(ctx, prefs, now)
	if err != nil {
		return nil, err
	}
	if in == nil {
		return nil, nil
	}
	// The data floor is a correctness gate; force does not bypass it.
	if in.InsufficientData() {
		s.log.Debug().Int("records", len(in.Records)).
			Int("days_since_sync", in.DaysSinceLastSync).
			Msg("analysis skipped: not enough synced data")
		return nil, nil
	}

	stats := analysis.ComputeStats(*in)
	scenarios := analysis.DetectScenarios(*in, stats)

	if _, err := s.expireActive(ctx, now); err != nil {
		return nil, err
	}
	active, err := s.recs.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing active recommendations: %w", err)
	}

	result := &contract.AnalysisResult{
		GeneratedAt: now,
		PlanID:      in.PlanID,
		PlanName:    in.PlanName,
		CurrentWeek: in.CurrentWeek,
		Stats:       stats,
		Scenarios:   scenarios,
		Suppressed:  map[domain.ScenarioTag]string{},
	}

	// Spacing is anchored on the newest active card; resolved cards no
	// longer hold anything back. ListActive returns newest first.
	var lastCreated *time.Time
	if len(active) > 0 {
		t := active[0].CreatedAt
		lastCreated = &t
	}
	for _, sc := range scenarios {
		if reason := s.gate(in, active, sc); reason != "" {
			result.Suppressed[sc.Tag] = reason
			continue
		}

		rec := analysis.BuildRecommendation(*in, stats, sc, now)
		if rec == nil {
			continue
		}
		if rec.Priority != domain.PriorityHigh && lastCreated != nil &&
			now.Sub(*lastCreated) < nonHighPrioritySpacing {
			result.Suppressed[sc.Tag] = "spacing"
			continue
		}
		if len(active) >= maxActiveRecommendations {
			result.Suppressed[sc.Tag] = "active_cap"
			continue
		}

		if err := s.recs.Create(ctx, rec); err != nil {
			return nil, fmt.Errorf("storing recommendation: %w", err)
		}
		result.Emitted = append(result.Emitted, rec)
		active = append(active, rec)
		created := rec.CreatedAt
		lastCreated = &created
	}

	if len(result.Emitted) > 0 {
		if _, err := s.recs.Prune(ctx, recommendationStoreCap); err != nil {
			return nil, fmt.Errorf("pruning recommendation store: %w", err)
		}
	}
	if err := s.state.SetLastAnalysisAt(ctx, now); err != nil {
		return nil, err
	}

	if result.Active, err = s.recs.ListActive(ctx); err != nil {
		return nil, fmt.Errorf("listing active recommendations: %w", err)
	}
	s.log.Info().Int("scenarios", len(scenarios)).
		Int("emitted", len(result.Emitted)).
		Int("active", len(result.Active)).
		Msg("analysis pass complete")
	return result, nil
}

// gate applies the pre-build suppression rules: taper lock, then
// per-scenario dedupe. Spacing and the active cap need the built card
// and are checked by the caller.
func (s *advisorService) gate(in *analysis.Input, active []*domain.Recommendation, sc analysis.DetectedScenario) string {
	if in.WeeksRemaining == 0 && sc.Tag != domain.ScenarioRaceWeekOptimization {
		return "taper_lock"
	}
	for _, a := range active {
		if a.Scenario == sc.Tag {
			return "duplicate_scenario"
		}
	}
	return ""
}

func (s *advisorService) preferences(ctx context.Context) domain.CoachPreferences {
	p, err := s.prefs.Get(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn().Err(err).Msg("preferences unreadable, using defaults")
		}
		return domain.DefaultPreferences()
	}
	return *p
}

func (s *advisorService) pastAnalysisFloor(ctx context.Context, freq domain.AnalysisFrequency, now time.Time) (bool, error) {
	last, err := s.state.LastAnalysisAt(ctx)
	if err != nil {
		return false, err
	}
	if last == nil {
		return true, nil
	}
	floor := dailyAnalysisFloor
	if freq == domain.FrequencyWeekly {
		floor = weeklyAnalysisFloor
	}
	return now.Sub(*last) >= floor, nil
}

func (s *advisorService) ActiveRecommendations(ctx context.Context) ([]*domain.Recommendation, error) {
	return s.recs.ListActive(ctx)
}

func (s *advisorService) AllRecommendations(ctx context.Context) ([]*domain.Recommendation, error) {
	return s.recs.List(ctx)
}

func (s *advisorService) Dismiss(ctx context.Context, id string) error {
	rec, err := s.recs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &contract.AnalysisError{Code: contract.ErrRecommendationNotFound, Message: id}
		}
		return err
	}
	if !rec.Dismissible {
		return &contract.AnalysisError{
			Code:    contract.ErrNotActionable,
			Message: "this recommendation requires choosing an option",
		}
	}
	if err := rec.Transition(domain.StatusDismissed); err != nil {
		return &contract.AnalysisError{Code: contract.ErrNotActionable, Message: err.Error()}
	}
	if err := s.recs.Update(ctx, rec); err != nil {
		return err
	}
	s.appendEvent(ctx, rec, domain.AnalyticsDismissed, nil)
	return nil
}

func (s *advisorService) BadgeCount(ctx context.Context) (int, error) {
	active, err := s.recs.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	now := s.now()
	n := 0
	for _, rec := range active {
		if !rec.Expired(now) {
			n++
		}
	}
	return n, nil
}

func (s *advisorService) ExpireStale(ctx context.Context) (int, error) {
	return s.expireActive(ctx, s.now())
}

func (s *advisorService) expireActive(ctx context.Context, now time.Time) (int, error) {
	active, err := s.recs.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing active recommendations: %w", err)
	}
	expired := 0
	for _, rec := range active {
		if !rec.Expired(now) {
			continue
		}
		if err := rec.Transition(domain.StatusExpired); err != nil {
			continue
		}
		if err := s.recs.Update(ctx, rec); err != nil {
			return expired, err
		}
		s.appendEvent(ctx, rec, domain.AnalyticsExpired, nil)
		expired++
	}
	return expired, nil
}

// appendEvent records a lifecycle transition for offline rule tuning.
// The log is advisory; a failed append never fails the transition.
func (s *advisorService) appendEvent(ctx context.Context, rec *domain.Recommendation, action domain.AnalyticsAction, optionKey *string) {
	e := &domain.AnalyticsEvent{
		ID:               uuid.NewString(),
		RecommendationID: rec.ID,
		Scenario:         rec.Scenario,
		Type:             rec.Type,
		Action:           action,
		OptionKey:        optionKey,
		OccurredAt:       s.now(),
	}
	if err := s.events.Append(ctx, e); err != nil {
		s.log.Warn().Err(err).Str("recommendation", rec.ID).Msg("analytics append failed")
		return
	}
	if _, err := s.events.Prune(ctx, analyticsLogCap); err != nil {
		s.log.Warn().Err(err).Msg("analytics prune failed")
	}
}
