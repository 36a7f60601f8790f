package domain

import "time"

// DayOverride replaces a single day's fields verbatim, for surgical edits
// such as converting a quality day into a rest day.
type DayOverride struct {
	DayIndex int     `json:"dayIndex"`
	Type     DayType `json:"type"`
	Label    string  `json:"label"`
	Distance float64 `json:"distance"`
	Note     string  `json:"note"`
}

// WeekAdjustment describes the change to one week: an optional uniform
// mileage multiplier over run days, plus optional day-level overrides
// applied after the multiplier.
type WeekAdjustment struct {
	WeekIndex    int           `json:"weekIndex"`
	Multiplier   *float64      `json:"multiplier,omitempty"`
	DayOverrides []DayOverride `json:"dayOverrides,omitempty"`
}

// WeekSnapshot is the pre-mutation copy of one week, sufficient to fully
// restore it.
type WeekSnapshot struct {
	WeekIndex int       `json:"weekIndex"`
	Days      []PlanDay `json:"days"`
}

// PlanModification is a reversible mutation of future plan weeks. As an
// option payload it is a template: ID, AppliedAt, and Snapshots are only
// filled in when the modification is applied.
type PlanModification struct {
	ID               string           `json:"id,omitempty"`
	RecommendationID string           `json:"recommendationId,omitempty"`
	Description      string           `json:"description"`
	Type             ModificationType `json:"type"`
	Adjustments      []WeekAdjustment `json:"adjustments"`
	AppliedAt        time.Time        `json:"appliedAt,omitzero"`
	Undone           bool             `json:"undone"`
	Snapshots        []WeekSnapshot   `json:"snapshots,omitempty"`
}

// SnapshotWeek captures a week's current days before mutation.
func SnapshotWeek(w PlanWeek) WeekSnapshot {
	c := w.Clone()
	return WeekSnapshot{WeekIndex: c.Index, Days: c.Days}
}

// RestoreWeek rebuilds a week value from its snapshot.
func RestoreWeek(s WeekSnapshot) PlanWeek {
	days := make([]PlanDay, len(s.Days))
	copy(days, s.Days)
	return PlanWeek{Index: s.WeekIndex, Days: days}
}

// ApplyAdjustment produces the adjusted week from (old week, adjustment)
// without touching the input. The multiplier scales run-day distances and
// regenerates their labels; overrides then replace whole days verbatim.
// Completion flags are preserved so history is not rewritten.
func ApplyAdjustment(w PlanWeek, adj WeekAdjustment) PlanWeek {
	out := w.Clone()
	if adj.Multiplier != nil {
		for i := range out.Days {
			if out.Days[i].Type != DayRun {
				continue
			}
			out.Days[i].Distance = roundMiles(out.Days[i].Distance * *adj.Multiplier)
			out.Days[i].Label = RunLabel(out.Days[i].Distance, out.Days[i].Note)
		}
	}
	for _, ov := range adj.DayOverrides {
		for i := range out.Days {
			if out.Days[i].DayIndex != ov.DayIndex {
				continue
			}
			completed := out.Days[i].Completed
			out.Days[i] = PlanDay{
				DayIndex:  ov.DayIndex,
				Type:      ov.Type,
				Label:     ov.Label,
				Distance:  ov.Distance,
				Note:      ov.Note,
				Completed: completed,
			}
		}
	}
	return out
}

// roundMiles rounds to a tenth of a mile, the resolution plan labels use.
func roundMiles(d float64) float64 {
	return float64(int(d*10+0.5)) / 10
}
