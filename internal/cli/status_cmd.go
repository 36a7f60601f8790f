package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/cli/formatter"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/repository"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show training plan progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			plan, err := app.Plans.ActivePlan(ctx)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					fmt.Println(formatter.Dim("No active plan. Import one with `apollo plan import <file.json>`."))
					return nil
				}
				return err
			}

			mileage, err := app.Plans.WeeklyMileage(ctx, plan.ID)
			if err != nil {
				return err
			}
			badge, err := app.Advisor.BadgeCount(ctx)
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatPlanStatus(plan, mileage, badge, time.Now()))
			return nil
		},
	}
}
