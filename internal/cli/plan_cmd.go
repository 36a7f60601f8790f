package cli

import (
	"context"
	"fmt"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage training plans",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file.json>",
		Short: "Import a plan template and make it the active plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := app.Plans.ImportPlan(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n",
				formatter.StyleGreen.Render("Imported"),
				formatter.Bold(fmt.Sprintf("%s (%d weeks, starting %s)",
					plan.Name, plan.TotalWeeks, plan.StartDate.Format("2006-01-02"))))
			return nil
		},
	})

	return cmd
}
