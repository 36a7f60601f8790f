package analysis

import (
	"fmt"
	"sort"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
)

// DetectedScenario is one coaching situation the rules recognized, with a
// 0-100 confidence and the trigger strings justifying it.
type DetectedScenario struct {
	Tag        domain.ScenarioTag
	Confidence int
	Triggers   []string
}

// Qualifying floors per scenario. Evidence below the floor is omitted
// entirely, never emitted with a low confidence.
const (
	floorAheadOfSchedule = 40
	floorBehindSchedule  = 40
	floorOvertraining    = 35
	floorInconsistent    = 35
	floorRaceWeek        = 50
)

// evidence accumulates weighted rule hits for one scenario.
type evidence struct {
	confidence int
	triggers   []string
}

func (e *evidence) add(weight int, trigger string) {
	e.confidence += weight
	e.triggers = append(e.triggers, trigger)
}

func (e *evidence) scenario(tag domain.ScenarioTag) DetectedScenario {
	c := e.confidence
	if c > 100 {
		c = 100
	}
	return DetectedScenario{Tag: tag, Confidence: c, Triggers: e.triggers}
}

// DetectScenarios evaluates the five independent, non-exclusive scenario
// rules against the snapshot and its derived stats. The result is sorted
// by descending confidence.
func DetectScenarios(in Input, stats Stats) []DetectedScenario {
	type rule struct {
		tag    domain.ScenarioTag
		floor  int
		detect func(Input, Stats) evidence
	}
	rules := []rule{
		{domain.ScenarioAheadOfSchedule, floorAheadOfSchedule, detectAheadOfSchedule},
		{domain.ScenarioBehindSchedule, floorBehindSchedule, detectBehindSchedule},
		{domain.ScenarioOvertraining, floorOvertraining, detectOvertraining},
		{domain.ScenarioInconsistentExec, floorInconsistent, detectInconsistentExecution},
		{domain.ScenarioRaceWeekOptimization, floorRaceWeek, detectRaceWeek},
	}

	var detected []DetectedScenario
	for _, r := range rules {
		ev := r.detect(in, stats)
		if ev.confidence >= r.floor {
			detected = append(detected, ev.scenario(r.tag))
		}
	}

	sort.SliceStable(detected, func(i, j int) bool {
		return detected[i].Confidence > detected[j].Confidence
	})
	return detected
}

func detectAheadOfSchedule(in Input, stats Stats) evidence {
	var ev evidence
	factor := in.Aggressiveness.ThresholdFactor()

	if stats.AvgLongRunPace > 0 && stats.AvgLongRunPace < 9.5 {
		ev.add(30, fmt.Sprintf("Long runs averaging %s/mi, faster than the 9:30 benchmark", domain.FormatPace(stats.AvgLongRunPace)))
	}
	if float64(in.Readiness) > 85*factor && in.WeeksRemaining >= 6 {
		ev.add(30, fmt.Sprintf("Readiness score %d with %d weeks still to go", in.Readiness, in.WeeksRemaining))
	}
	if in.Adherence > 85 {
		ev.add(20, fmt.Sprintf("Training adherence at %d%%", in.Adherence))
	}
	if n := countOverDistanceRuns(in.Records, 1.10); n >= 3 {
		ev.add(20, fmt.Sprintf("%d runs went at least 10%% beyond their planned distance", n))
	}
	return ev
}

func detectBehindSchedule(in Input, stats Stats) evidence {
	var ev evidence
	factor := in.Aggressiveness.ThresholdFactor()

	if stats.MissedKeyWorkouts >= 3 {
		ev.add(35, fmt.Sprintf("%d key workouts missed in the last two weeks", stats.MissedKeyWorkouts))
	}
	if in.RecentCompletionRate < 0.70*factor {
		ev.add(30, fmt.Sprintf("Only %.0f%% of recent scheduled runs completed", in.RecentCompletionRate*100))
	}
	if in.Readiness >= 1 && in.Readiness < 60 {
		ev.add(25, fmt.Sprintf("Readiness score down at %d", in.Readiness))
	}
	if in.OverallCompletionRate > 0 && in.OverallCompletionRate < 0.65 {
		ev.add(15, fmt.Sprintf("Overall plan completion at %.0f%%", in.OverallCompletionRate*100))
	}
	return ev
}

func detectOvertraining(in Input, stats Stats) evidence {
	var ev evidence

	if stats.WeekOverWeekChangePct >= 25 {
		ev.add(35, fmt.Sprintf("Weekly mileage up %.0f%% over last week", stats.WeekOverWeekChangePct))
	}
	if stats.ConsecutiveTrainingDays >= 7 {
		ev.add(30, fmt.Sprintf("%d consecutive days trained without a rest day", stats.ConsecutiveTrainingDays))
	}
	if stats.RecentPaceSlowdownPct >= 5 {
		ev.add(25, fmt.Sprintf("Recent paces %.0f%% slower than the prior six runs", stats.RecentPaceSlowdownPct))
	}
	return ev
}

func detectInconsistentExecution(in Input, stats Stats) evidence {
	var ev evidence

	if stats.EasyDaysTooFast {
		ev.add(35, fmt.Sprintf("Easy runs averaging %s/mi, faster than the 8:30 easy ceiling", domain.FormatPace(stats.AvgEasyPace)))
	}
	if stats.HardDaysTooSlow {
		ev.add(30, fmt.Sprintf("Hard sessions at %s/mi are within 5%% of easy pace", domain.FormatPace(stats.AvgHardPace)))
	}
	if n := countOffPlanRuns(in.Records, 0.20); n >= 4 {
		ev.add(25, fmt.Sprintf("%d runs deviated more than 20%% from their planned distance", n))
	}
	return ev
}

func detectRaceWeek(in Input, stats Stats) evidence {
	var ev evidence

	if in.WeeksRemaining <= 2 {
		ev.add(50, fmt.Sprintf("Race is %d weeks away", in.WeeksRemaining))
	}
	if in.Readiness >= 75 {
		ev.add(25, fmt.Sprintf("Readiness score %d heading into the taper", in.Readiness))
	}
	if len(in.Records) >= 5 {
		ev.add(15, fmt.Sprintf("%d synced runs to base race guidance on", len(in.Records)))
	}
	return ev
}

// countOverDistanceRuns counts records whose actual distance reached the
// given ratio of the planned distance.
func countOverDistanceRuns(records []domain.RunRecord, ratio float64) int {
	n := 0
	for _, r := range records {
		if r.PlannedDistance > 0 && r.DistanceRatio() >= ratio {
			n++
		}
	}
	return n
}

// countOffPlanRuns counts records whose actual distance deviated from plan
// by more than the given fraction in either direction.
func countOffPlanRuns(records []domain.RunRecord, tolerance float64) int {
	n := 0
	for _, r := range records {
		if r.PlannedDistance <= 0 {
			continue
		}
		ratio := r.DistanceRatio()
		if ratio > 1+tolerance || ratio < 1-tolerance {
			n++
		}
	}
	return n
}
