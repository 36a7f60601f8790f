package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/cli/formatter"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
	"github.com/spf13/cobra"
)

func newScoresCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Record auxiliary training scores",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <readiness|adherence> <0-100>",
		Short: "Record the latest readiness or adherence score",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := domain.ScoreKind(args[0])
			if kind != domain.ScoreReadiness && kind != domain.ScoreAdherence {
				return fmt.Errorf("unknown score kind %q", args[0])
			}
			value, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("score must be a number: %w", err)
			}
			if err := app.Plans.SetScore(context.Background(), kind, value); err != nil {
				return err
			}
			fmt.Printf("%s %s = %d\n", formatter.StyleGreen.Render("Recorded"), kind, value)
			return nil
		},
	})

	return cmd
}
