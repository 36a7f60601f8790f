package cli

import (
	"context"
	"fmt"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a coaching analysis pass over the active plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Advisor.Analyze(context.Background(), force)
			if err != nil {
				return err
			}
			if res == nil {
				fmt.Println(formatter.Dim("Nothing to analyze right now. Try --force after a sync."))
				return nil
			}
			fmt.Print(formatter.FormatAnalysis(res))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Bypass the analysis rate limit")
	return cmd
}
