package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRecsCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "recs [id]",
		Short: "List coaching recommendations, or show one in full",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now()

			if len(args) == 1 {
				rec, err := resolveActiveRecommendation(ctx, app, args[0])
				if err != nil {
					return err
				}
				fmt.Print(formatter.FormatRecommendation(rec, now))
				return nil
			}

			// Stale cards expire on read so the list never shows a card
			// past its horizon.
			if _, err := app.Advisor.ExpireStale(ctx); err != nil {
				return err
			}

			list := app.Advisor.ActiveRecommendations
			if all {
				list = app.Advisor.AllRecommendations
			}
			recs, err := list(ctx)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatRecommendationList(recs, now))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include dismissed, accepted, and expired recommendations")
	return cmd
}
