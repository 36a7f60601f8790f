package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
	"github.com/google/uuid"
)

// MaxIncreaseMultiplier is the hard safety ceiling on automated mileage
// increases. Whatever a builder asks for, no week is ever scaled up by
// more than 10%.
const MaxIncreaseMultiplier = 1.10

// Expiry horizons per scenario urgency.
var expiryHorizons = map[domain.ScenarioTag]time.Duration{
	domain.ScenarioOvertraining:         3 * 24 * time.Hour,
	domain.ScenarioBehindSchedule:       5 * 24 * time.Hour,
	domain.ScenarioAheadOfSchedule:      7 * 24 * time.Hour,
	domain.ScenarioInconsistentExec:     7 * 24 * time.Hour,
	domain.ScenarioRaceWeekOptimization: 14 * 24 * time.Hour,
}

// BuildRecommendation converts one qualifying scenario into a
// recommendation. Titles and messages quote concrete numbers from the
// snapshot; reasoning is the scenario's triggers joined with periods.
func BuildRecommendation(in Input, stats Stats, sc DetectedScenario, now time.Time) *domain.Recommendation {
	var rec *domain.Recommendation
	switch sc.Tag {
	case domain.ScenarioAheadOfSchedule:
		rec = buildAheadOfSchedule(in, stats)
	case domain.ScenarioBehindSchedule:
		rec = buildBehindSchedule(in, stats)
	case domain.ScenarioOvertraining:
		rec = buildOvertraining(in, stats)
	case domain.ScenarioInconsistentExec:
		rec = buildInconsistentExecution(in, stats)
	case domain.ScenarioRaceWeekOptimization:
		rec = buildRaceWeek(in, stats)
	default:
		return nil
	}

	rec.ID = uuid.NewString()
	rec.Scenario = sc.Tag
	rec.Status = domain.StatusActive
	rec.Confidence = sc.Confidence
	rec.Reasoning = strings.Join(sc.Triggers, ". ")
	rec.CreatedAt = now
	rec.ExpiresAt = now.Add(expiryHorizons[sc.Tag])
	return rec
}

func buildAheadOfSchedule(in Input, stats Stats) *domain.Recommendation {
	options := []domain.RecommendationOption{}
	if tmpl := newModificationTemplate(in, domain.ModMileageIncrease,
		"Increase weekly mileage 10% for the next 2 weeks", 1.10, 2); tmpl != nil {
		options = append(options, domain.RecommendationOption{
			Key:          "increase_10",
			Label:        "Add 10% volume",
			Description:  "Scale the next two weeks' run distances up by 10%",
			Impact:       "+10% mileage for 2 weeks",
			ActionType:   domain.ActionApplyModification,
			Modification: tmpl,
		})
	}
	options = append(options, domain.RecommendationOption{
		Key:         "hold_steady",
		Label:       "Hold steady",
		Description: "Keep the current plan and bank the fitness",
		ActionType:  domain.ActionDismiss,
	})

	return &domain.Recommendation{
		Type:     domain.RecommendationUpgrade,
		Priority: domain.PriorityMedium,
		Title:    "You're ahead of schedule",
		Message: fmt.Sprintf(
			"Long runs are averaging %s/mi and readiness is at %d with %d weeks to go. There's room to absorb a little more volume.",
			domain.FormatPace(stats.AvgLongRunPace), in.Readiness, in.WeeksRemaining),
		Options:     options,
		Dismissible: true,
	}
}

func buildBehindSchedule(in Input, stats Stats) *domain.Recommendation {
	options := []domain.RecommendationOption{}
	if tmpl := newModificationTemplate(in, domain.ModMileageReduction,
		"Reduce weekly mileage 20% for the next 2 weeks", 0.80, 2); tmpl != nil {
		options = append(options, domain.RecommendationOption{
			Key:          "reduce_20",
			Label:        "Reduce mileage 20%",
			Description:  "Scale the next two weeks down 20% to rebuild consistency",
			Impact:       "-20% mileage for 2 weeks",
			ActionType:   domain.ActionApplyModification,
			Modification: tmpl,
		})
	}
	if tmpl := newModificationTemplate(in, domain.ModMileageReduction,
		"Reduce weekly mileage 10% for the next 2 weeks", 0.90, 2); tmpl != nil {
		options = append(options, domain.RecommendationOption{
			Key:          "reduce_10",
			Label:        "Reduce mileage 10%",
			Description:  "A lighter trim if the missed sessions were one-off",
			Impact:       "-10% mileage for 2 weeks",
			ActionType:   domain.ActionApplyModification,
			Modification: tmpl,
		})
	}
	options = append(options, domain.RecommendationOption{
		Key:         "keep_plan",
		Label:       "Keep the plan",
		Description: "Stay on the written schedule and catch up as able",
		ActionType:  domain.ActionDismiss,
	})

	return &domain.Recommendation{
		Type:     domain.RecommendationReduce,
		Priority: domain.PriorityHigh,
		Title:    "Training has fallen behind plan",
		Message: fmt.Sprintf(
			"%d key workouts were missed in the last two weeks and only %.0f%% of recent scheduled runs were completed. Trimming volume now protects the weeks that matter most.",
			stats.MissedKeyWorkouts, in.RecentCompletionRate*100),
		Options:     options,
		Dismissible: true,
	}
}

func buildOvertraining(in Input, stats Stats) *domain.Recommendation {
	options := []domain.RecommendationOption{}
	if tmpl := newModificationTemplate(in, domain.ModMileageReduction,
		"Cut next week's mileage 30% as a recovery week", 0.70, 1); tmpl != nil {
		options = append(options, domain.RecommendationOption{
			Key:          "cutback_week",
			Label:        "Take a cutback week",
			Description:  "Scale next week's runs down 30% to absorb the recent load",
			Impact:       "-30% mileage for 1 week",
			ActionType:   domain.ActionApplyModification,
			Modification: tmpl,
		})
	}
	if tmpl := restDayTemplate(in); tmpl != nil {
		options = append(options, domain.RecommendationOption{
			Key:          "extra_rest_day",
			Label:        "Insert a rest day",
			Description:  "Convert next week's biggest run into a full rest day",
			Impact:       "1 extra rest day next week",
			ActionType:   domain.ActionApplyModification,
			Modification: tmpl,
		})
	}

	// Inaction here carries injury risk, so the card cannot be dismissed;
	// it stays visible until an option is chosen or it expires.
	return &domain.Recommendation{
		Type:     domain.RecommendationRest,
		Priority: domain.PriorityHigh,
		Title:    "Signs of overtraining",
		Message: fmt.Sprintf(
			"Weekly load is up %.0f%% and you've trained %d days without rest. Recovery now costs less than an injury later.",
			stats.WeekOverWeekChangePct, stats.ConsecutiveTrainingDays),
		Options:     options,
		Dismissible: false,
	}
}

func buildInconsistentExecution(in Input, stats Stats) *domain.Recommendation {
	return &domain.Recommendation{
		Type:     domain.RecommendationAdjustPacing,
		Priority: domain.PriorityMedium,
		Title:    "Pacing discipline is slipping",
		Message: fmt.Sprintf(
			"Easy runs are averaging %s/mi while hard sessions sit at %s/mi. Easy days easy, hard days hard: the contrast is what drives adaptation.",
			domain.FormatPace(stats.AvgEasyPace), domain.FormatPace(stats.AvgHardPace)),
		Options: []domain.RecommendationOption{{
			Key:         "commit_paces",
			Label:       "Commit to target paces",
			Description: "Acknowledge and hold easy runs above 8:30/mi this week",
			ActionType:  domain.ActionDismiss,
		}},
		Dismissible: true,
	}
}

func buildRaceWeek(in Input, stats Stats) *domain.Recommendation {
	options := []domain.RecommendationOption{}
	if tmpl := newModificationTemplate(in, domain.ModMileageReduction,
		"Trim remaining mileage 40% to sharpen the taper", 0.60, 2); tmpl != nil {
		options = append(options, domain.RecommendationOption{
			Key:          "sharpen_taper",
			Label:        "Sharpen the taper",
			Description:  "Scale the remaining weeks down 40%, keeping legs fresh",
			Impact:       "-40% mileage through race week",
			ActionType:   domain.ActionApplyModification,
			Modification: tmpl,
		})
	}
	options = append(options, domain.RecommendationOption{
		Key:         "trust_plan",
		Label:       "Trust the plan",
		Description: "The written taper already does the work",
		ActionType:  domain.ActionDismiss,
	})

	return &domain.Recommendation{
		Type:     domain.RecommendationTaper,
		Priority: domain.PriorityHigh,
		Title:    "Race week is here",
		Message: fmt.Sprintf(
			"%d weeks to race day with readiness at %d. Nothing gained this week outweighs arriving rested.",
			in.WeeksRemaining, in.Readiness),
		Options:     options,
		Dismissible: true,
	}
}

// newModificationTemplate builds the shared apply_modification payload:
// weeksToAdjust consecutive future weeks starting at current+1, stopping
// early at the plan's end. Increase multipliers are clamped to the 1.10
// safety ceiling regardless of what was requested.
func newModificationTemplate(in Input, modType domain.ModificationType, description string, multiplier float64, weeksToAdjust int) *domain.PlanModification {
	if multiplier > MaxIncreaseMultiplier {
		multiplier = MaxIncreaseMultiplier
	}

	var adjustments []domain.WeekAdjustment
	for i := 1; i <= weeksToAdjust; i++ {
		week := in.CurrentWeek + i
		if week >= in.TotalWeeks {
			break
		}
		m := multiplier
		adjustments = append(adjustments, domain.WeekAdjustment{WeekIndex: week, Multiplier: &m})
	}
	if len(adjustments) == 0 {
		return nil
	}

	return &domain.PlanModification{
		Description: description,
		Type:        modType,
		Adjustments: adjustments,
	}
}

// restDayTemplate converts next week's longest run into a rest day via a
// day-level override. Returns nil when next week has no run days.
func restDayTemplate(in Input) *domain.PlanModification {
	nextWeek := in.CurrentWeek + 1
	if nextWeek >= in.TotalWeeks {
		return nil
	}

	var target *ScheduledDay
	for i := range in.Schedule {
		d := &in.Schedule[i]
		if d.WeekIndex != nextWeek || d.Type != domain.DayRun {
			continue
		}
		if target == nil || d.Distance > target.Distance {
			target = d
		}
	}
	if target == nil {
		return nil
	}

	return &domain.PlanModification{
		Description: "Convert next week's longest run into a rest day",
		Type:        domain.ModMileageReduction,
		Adjustments: []domain.WeekAdjustment{{
			WeekIndex: nextWeek,
			DayOverrides: []domain.DayOverride{{
				DayIndex: target.DayIndex,
				Type:     domain.DayRest,
				Label:    "Rest",
				Distance: 0,
				Note:     "recovery",
			}},
		}},
	}
}
