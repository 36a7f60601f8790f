package cli

import (
	"context"
	"fmt"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDismissCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss [id]",
		Short: "Dismiss a recommendation without acting on it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			rec, err := resolveActiveRecommendation(ctx, app, input)
			if err != nil {
				return err
			}
			if err := app.Advisor.Dismiss(ctx, rec.ID); err != nil {
				return err
			}
			fmt.Println(formatter.Dim(fmt.Sprintf("Dismissed %q.", rec.Title)))
			return nil
		},
	}
}
