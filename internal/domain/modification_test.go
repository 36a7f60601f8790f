package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modWeek() PlanWeek {
	return PlanWeek{Index: 3, Days: []PlanDay{
		{DayIndex: 0, Type: DayRest, Label: "Rest"},
		{DayIndex: 1, Type: DayRun, Label: "5.0 mi easy", Distance: 5, Note: NoteEasy, Completed: true},
		{DayIndex: 2, Type: DayRun, Label: "10.0 mi long", Distance: 10, Note: NoteLong},
		{DayIndex: 3, Type: DayCross, Label: "Bike 30min"},
	}}
}

func TestApplyAdjustment_Multiplier(t *testing.T) {
	m := 0.8
	out := ApplyAdjustment(modWeek(), WeekAdjustment{WeekIndex: 3, Multiplier: &m})

	assert.InDelta(t, 4.0, out.Days[1].Distance, 0.001)
	assert.Equal(t, "4.0 mi easy", out.Days[1].Label)
	assert.InDelta(t, 8.0, out.Days[2].Distance, 0.001)
	assert.Equal(t, "8.0 mi long", out.Days[2].Label)

	// Non-run days are untouched.
	assert.Equal(t, "Rest", out.Days[0].Label)
	assert.Equal(t, "Bike 30min", out.Days[3].Label)
	// Completion flags survive the scaling.
	assert.True(t, out.Days[1].Completed)
}

func TestApplyAdjustment_DoesNotMutateInput(t *testing.T) {
	w := modWeek()
	m := 0.5
	_ = ApplyAdjustment(w, WeekAdjustment{WeekIndex: 3, Multiplier: &m})

	assert.InDelta(t, 5.0, w.Days[1].Distance, 0.001)
	assert.Equal(t, "5.0 mi easy", w.Days[1].Label)
}

func TestApplyAdjustment_DayOverride(t *testing.T) {
	out := ApplyAdjustment(modWeek(), WeekAdjustment{
		WeekIndex: 3,
		DayOverrides: []DayOverride{{
			DayIndex: 2, Type: DayRest, Label: "Rest", Distance: 0, Note: "recovery",
		}},
	})

	assert.Equal(t, DayRest, out.Days[2].Type)
	assert.Equal(t, "Rest", out.Days[2].Label)
	assert.Zero(t, out.Days[2].Distance)
	assert.Equal(t, "recovery", out.Days[2].Note)
}

func TestApplyAdjustment_RoundsToTenth(t *testing.T) {
	m := 1.1
	out := ApplyAdjustment(modWeek(), WeekAdjustment{WeekIndex: 3, Multiplier: &m})
	assert.InDelta(t, 5.5, out.Days[1].Distance, 0.001)
	assert.InDelta(t, 11.0, out.Days[2].Distance, 0.001)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	w := modWeek()
	snap := SnapshotWeek(w)

	m := 0.6
	adjusted := ApplyAdjustment(w, WeekAdjustment{WeekIndex: 3, Multiplier: &m})
	require.NotEqual(t, w.Days, adjusted.Days)

	restored := RestoreWeek(snap)
	assert.Equal(t, w, restored)
}

func TestRecommendationTransitions(t *testing.T) {
	r := &Recommendation{ID: "r1", Status: StatusActive}
	require.NoError(t, r.Transition(StatusDismissed))
	assert.Equal(t, StatusDismissed, r.Status)

	// Terminal states never move again.
	assert.Error(t, r.Transition(StatusAccepted))
	assert.Error(t, r.Transition(StatusActive))
	assert.Equal(t, StatusDismissed, r.Status)
}
