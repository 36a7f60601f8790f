package cli

import (
	"context"
	"fmt"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newReviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Step through active recommendations interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if _, err := app.Advisor.ExpireStale(ctx); err != nil {
				return err
			}
			recs, err := app.Advisor.ActiveRecommendations(ctx)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Println(formatter.Dim("Nothing to review. You're all caught up."))
				return nil
			}

			_, err = tea.NewProgram(newReviewModel(app, recs)).Run()
			return err
		},
	}
}
