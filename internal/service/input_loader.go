package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/analysis"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/repository"
)

// inputLoader assembles the analysis snapshot from the engine's
// collaborators. A failed collaborator read degrades its field to the
// zero value with a warning; only a missing plan aborts the pass.
type inputLoader struct {
	plans   repository.PlanRepo
	records repository.RunRecordRepo
	scores  repository.ScoreRepo
	state   repository.EngineStateRepo
	log     zerolog.Logger
}

// Load returns nil when there is no active plan to analyze.
func (l *inputLoader) Load(ctx context.Context, prefs domain.CoachPreferences, now time.Time) (*analysis.Input, error) {
	plan, err := l.plans.GetActive(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			l.log.Warn().Err(err).Msg("analysis input: active plan unreadable")
		}
		return nil, nil
	}

	in := &analysis.Input{
		PlanID:         plan.ID,
		PlanName:       plan.Name,
		StartDate:      plan.StartDate,
		TotalWeeks:     plan.TotalWeeks,
		CurrentWeek:    plan.CurrentWeekIndex(now),
		WeeksRemaining: plan.WeeksRemaining(now),
		Aggressiveness: prefs.Aggressiveness,
		Now:            now,
	}

	if in.Records, err = l.records.ListByPlan(ctx, plan.ID); err != nil {
		l.log.Warn().Err(err).Msg("analysis input: run records unreadable")
		in.Records = nil
	}
	if in.WeeklyMileage, err = l.plans.WeeklyMileage(ctx, plan.ID); err != nil {
		l.log.Warn().Err(err).Msg("analysis input: weekly mileage unreadable")
		in.WeeklyMileage = nil
	}

	in.Readiness = l.latestScore(ctx, domain.ScoreReadiness)
	in.Adherence = l.latestScore(ctx, domain.ScoreAdherence)

	if in.SourceConnected, err = l.state.SourceConnected(ctx); err != nil {
		l.log.Warn().Err(err).Msg("analysis input: source connectivity unreadable")
		in.SourceConnected = false
	}

	in.DaysSinceLastSync = l.daysSinceLastSync(ctx, plan, now)
	in.Schedule = resolveSchedule(plan)
	in.RecentCompletionRate, in.OverallCompletionRate = completionRates(in.Schedule, now)

	return in, nil
}

// latestScore degrades to 0, the "unknown" value, on any failure. A
// score that was simply never recorded is not worth a warning.
func (l *inputLoader) latestScore(ctx context.Context, kind domain.ScoreKind) int {
	v, err := l.scores.Latest(ctx, kind)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			l.log.Warn().Err(err).Str("kind", string(kind)).Msg("analysis input: score unreadable")
		}
		return 0
	}
	return v
}

// daysSinceLastSync falls back to the plan's age when nothing has ever
// synced, so a stale brand-new plan still trips the data floor.
func (l *inputLoader) daysSinceLastSync(ctx context.Context, plan *domain.Plan, now time.Time) int {
	last, err := l.records.LatestSyncedAt(ctx, plan.ID)
	if err != nil {
		l.log.Warn().Err(err).Msg("analysis input: last sync time unreadable")
		last = nil
	}
	since := plan.StartDate
	if last != nil {
		since = *last
	}
	days := int(now.Sub(since).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// resolveSchedule flattens the whole plan into dated slots, in
// chronological order. All calendar math happens here so the stats and
// detection code only ever see resolved dates and indices.
func resolveSchedule(plan *domain.Plan) []analysis.ScheduledDay {
	var out []analysis.ScheduledDay
	for _, w := range plan.Weeks {
		for _, d := range w.Days {
			out = append(out, analysis.ScheduledDay{
				WeekIndex: w.Index,
				DayIndex:  d.DayIndex,
				Date:      plan.DayDate(w.Index, d.DayIndex),
				Type:      d.Type,
				Label:     d.Label,
				Distance:  d.Distance,
				Note:      d.Note,
				Completed: d.Completed,
			})
		}
	}
	return out
}

// completionRates measures what fraction of past-dated scheduled run
// days were completed, over the last 14 days and over the whole plan to
// date.
func completionRates(schedule []analysis.ScheduledDay, now time.Time) (recent, overall float64) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	cutoff := today.AddDate(0, 0, -14)

	var recentDone, recentTotal, overallDone, overallTotal int
	for _, d := range schedule {
		if d.Type != domain.DayRun || !d.Date.Before(today) {
			continue
		}
		overallTotal++
		if d.Completed {
			overallDone++
		}
		if !d.Date.Before(cutoff) {
			recentTotal++
			if d.Completed {
				recentDone++
			}
		}
	}
	if recentTotal > 0 {
		recent = float64(recentDone) / float64(recentTotal)
	}
	if overallTotal > 0 {
		overall = float64(overallDone) / float64(overallTotal)
	}
	return recent, overall
}
