package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/contract"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
)

// FormatRecommendationList renders recommendations as a table, newest
// first, the shape `recs` prints.
func FormatRecommendationList(recs []*domain.Recommendation, now time.Time) string {
	if len(recs) == 0 {
		return Dim("No recommendations. Run `apollo analyze` after your next sync.") + "\n"
	}

	headers := []string{"ID", "PRIORITY", "TITLE", "CONF", "STATUS", "EXPIRES"}
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		expires := Dim("--")
		if r.Status == domain.StatusActive {
			expires = StyleFg.Render(RelativeDateFrom(r.ExpiresAt, now))
		}
		rows = append(rows, []string{
			Dim(shortID(r.ID)),
			PriorityIndicator(r.Priority),
			Bold(r.Title),
			fmt.Sprintf("%d", r.Confidence),
			StatusStyle(r.Status).Render(string(r.Status)),
			expires,
		})
	}
	return RenderTable(headers, rows)
}

// FormatRecommendation renders one recommendation as a full card with
// its message, reasoning, and options.
func FormatRecommendation(r *domain.Recommendation, now time.Time) string {
	var b strings.Builder

	b.WriteString(PriorityIndicator(r.Priority))
	b.WriteString("  ")
	b.WriteString(Bold(r.Title))
	b.WriteString(Dim(fmt.Sprintf("  (%s, confidence %d)", r.Scenario, r.Confidence)))
	b.WriteString("\n\n")
	b.WriteString(StyleFg.Render(r.Message))
	b.WriteString("\n")

	if r.Reasoning != "" {
		b.WriteString("\n")
		b.WriteString(Dim("Why: " + r.Reasoning))
		b.WriteString("\n")
	}

	if len(r.Options) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleHeader.Render("Options"))
		b.WriteString("\n")
		for _, opt := range r.Options {
			b.WriteString(fmt.Sprintf("  %s  %s", StyleBlue.Render(opt.Key), StyleFg.Render(opt.Label)))
			if opt.Impact != "" {
				b.WriteString(Dim("  " + opt.Impact))
			}
			b.WriteString("\n")
			b.WriteString(Dim("      " + opt.Description))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch r.Status {
	case domain.StatusActive:
		b.WriteString(Dim(fmt.Sprintf("Expires %s.", RelativeDateFrom(r.ExpiresAt, now))))
		if !r.Dismissible {
			b.WriteString(" " + StyleYellow.Render("This one needs a decision; it cannot be dismissed."))
		}
	default:
		b.WriteString(StatusStyle(r.Status).Render(string(r.Status)))
		if r.SelectedOptionKey != nil {
			b.WriteString(Dim(" via " + *r.SelectedOptionKey))
		}
	}
	b.WriteString("\n")

	return RenderBox("Coach", b.String())
}

// FormatAnalysis summarizes one analysis pass for the terminal.
func FormatAnalysis(res *contract.AnalysisResult) string {
	if res == nil {
		return Dim("Nothing to analyze right now.") + "\n"
	}

	var b strings.Builder
	b.WriteString(Header("Analysis"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s, week %d\n", Dim("Plan:"), Bold(res.PlanName), res.CurrentWeek+1))

	if len(res.Scenarios) == 0 {
		b.WriteString(StyleGreen.Render("Training looks on track; nothing to flag.") + "\n")
		return b.String()
	}

	for _, sc := range res.Scenarios {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			StyleYellow.Render(fmt.Sprintf("%3d", sc.Confidence)),
			StyleFg.Render(string(sc.Tag))))
		if reason, ok := res.Suppressed[sc.Tag]; ok {
			b.WriteString(Dim(fmt.Sprintf("      suppressed: %s\n", suppressionText(reason))))
		}
	}

	if len(res.Emitted) > 0 {
		b.WriteString("\n")
		for _, r := range res.Emitted {
			b.WriteString(FormatRecommendation(r, res.GeneratedAt))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(Dim("No new recommendations.") + "\n")
	}
	return b.String()
}

// FormatModification renders an applied modification, week by week.
func FormatModification(m *domain.PlanModification, now time.Time) string {
	var b strings.Builder
	b.WriteString(Bold(m.Description))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%s, applied %s", m.Type, RelativeDateFrom(m.AppliedAt, now))))
	if m.Undone {
		b.WriteString(" " + StyleYellow.Render("(undone)"))
	}
	b.WriteString("\n")
	for _, adj := range m.Adjustments {
		line := fmt.Sprintf("  week %d", adj.WeekIndex+1)
		if adj.Multiplier != nil {
			line += fmt.Sprintf(": ×%.2f", *adj.Multiplier)
		}
		for _, ov := range adj.DayOverrides {
			line += fmt.Sprintf(", day %d → %s", ov.DayIndex+1, ov.Label)
		}
		b.WriteString(StyleFg.Render(line) + "\n")
	}
	b.WriteString(Dim(fmt.Sprintf("Undo with `apollo undo %s`.", shortID(m.ID))) + "\n")
	return b.String()
}

func suppressionText(reason string) string {
	switch reason {
	case "taper_lock":
		return "race week; only taper guidance goes out"
	case "duplicate_scenario":
		return "already have an active card for this"
	case "spacing":
		return "too soon after the last card"
	case "active_cap":
		return "three cards are already active"
	default:
		return reason
	}
}

// shortID keeps the first UUID group, enough to identify a row at the
// CLI. Full IDs are accepted everywhere a short one is shown.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
