package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
)

const mileageBarWidth = 10

// FormatPlanStatus renders the training-plan dashboard: where the
// runner is in the plan and how each week's mileage is tracking.
func FormatPlanStatus(plan *domain.Plan, mileage []domain.WeekMileage, badge int, now time.Time) string {
	var b strings.Builder

	current := plan.CurrentWeekIndex(now)
	remaining := plan.WeeksRemaining(now)

	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Plan:"), Bold(plan.Name)))
	b.WriteString(fmt.Sprintf("%s week %d of %d", Dim("Now:"), current+1, plan.TotalWeeks))
	switch remaining {
	case 0:
		b.WriteString("  " + StyleRed.Render("RACE WEEK"))
	case 1:
		b.WriteString("  " + StyleYellow.Render("1 week to race day"))
	default:
		b.WriteString(Dim(fmt.Sprintf("  %d weeks to race day", remaining)))
	}
	b.WriteString("\n")
	if badge > 0 {
		b.WriteString(StyleHeader.Render(fmt.Sprintf("● %d coaching recommendation(s) waiting", badge)) + "\n")
	}
	b.WriteString("\n")

	actualByWeek := make(map[int]domain.WeekMileage, len(mileage))
	for _, m := range mileage {
		actualByWeek[m.WeekIndex] = m
	}

	headers := []string{"WEEK", "PLANNED", "ACTUAL", "PROGRESS"}
	rows := make([][]string, 0, len(plan.Weeks))
	for _, w := range plan.Weeks {
		m := actualByWeek[w.Index]
		planned := m.Planned
		if planned == 0 {
			planned = w.TargetMileage()
		}

		label := fmt.Sprintf("%d", w.Index+1)
		if w.Index == current {
			label = StyleHeader.Render(label + " ◀")
		} else {
			label = StyleFg.Render(label)
		}

		pct := 0.0
		if planned > 0 {
			pct = m.Actual / planned
		}
		progress := Dim("--")
		if w.Index <= current {
			progress = RenderProgress(pct, mileageBarWidth)
		}

		rows = append(rows, []string{
			label,
			fmt.Sprintf("%.1f mi", planned),
			fmt.Sprintf("%.1f mi", m.Actual),
			progress,
		})
	}
	b.WriteString(RenderTable(headers, rows))

	return RenderBox("Training Status", b.String())
}
