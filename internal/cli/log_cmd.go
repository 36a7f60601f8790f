package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/cli/formatter"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/repository"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record training data against the active plan",
	}
	cmd.AddCommand(newLogRunCmd(app))
	return cmd
}

func newLogRunCmd(app *App) *cobra.Command {
	var week, day, movingMin int
	var distance, pace float64

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Log a completed run against a plan slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			plan, err := app.Plans.ActivePlan(ctx)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("no active plan; import one first")
				}
				return err
			}

			weekIdx, dayIdx := week-1, day-1
			w := plan.Week(weekIdx)
			if w == nil {
				return fmt.Errorf("plan has no week %d", week)
			}
			var planned float64
			found := false
			for _, d := range w.Days {
				if d.DayIndex == dayIdx {
					planned = d.Distance
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("week %d has no day %d", week, day)
			}

			rec := &domain.RunRecord{
				PlanID:          plan.ID,
				WeekIndex:       weekIdx,
				DayIndex:        dayIdx,
				PlannedDistance: planned,
				ActualDistance:  distance,
				ActualPace:      pace,
				MovingTimeSec:   movingMin * 60,
			}
			if err := app.Plans.LogRun(ctx, rec); err != nil {
				return err
			}

			fmt.Printf("%s %.1f mi at %s/mi, week %d day %d\n",
				formatter.StyleGreen.Render("Logged"), distance, domain.FormatPace(pace), week, day)
			return nil
		},
	}

	cmd.Flags().IntVar(&week, "week", 0, "Plan week (1-based)")
	cmd.Flags().IntVar(&day, "day", 0, "Day within the week (1-based)")
	cmd.Flags().Float64Var(&distance, "distance", 0, "Distance run, in miles")
	cmd.Flags().Float64Var(&pace, "pace", 0, "Average pace, decimal minutes per mile")
	cmd.Flags().IntVar(&movingMin, "minutes", 0, "Moving time, in minutes")
	_ = cmd.MarkFlagRequired("week")
	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("distance")

	return cmd
}
