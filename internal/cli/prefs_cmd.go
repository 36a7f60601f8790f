package cli

import (
	"context"
	"fmt"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/cli/formatter"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
	"github.com/spf13/cobra"
)

func newPrefsCmd(app *App) *cobra.Command {
	var enabled, disabled bool
	var frequency, aggressiveness string

	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change coaching preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			p, err := app.Plans.Preferences(ctx)
			if err != nil {
				return err
			}

			changed := false
			if enabled {
				p.Enabled = true
				changed = true
			}
			if disabled {
				p.Enabled = false
				changed = true
			}
			if cmd.Flags().Changed("frequency") {
				f := domain.AnalysisFrequency(frequency)
				switch f {
				case domain.FrequencyDaily, domain.FrequencyWeekly, domain.FrequencyBeforeKeyWorkouts:
				default:
					return fmt.Errorf("unknown frequency %q", frequency)
				}
				p.Frequency = f
				changed = true
			}
			if cmd.Flags().Changed("aggressiveness") {
				a := domain.Aggressiveness(aggressiveness)
				switch a {
				case domain.AggressivenessAggressive, domain.AggressivenessBalanced, domain.AggressivenessConservative:
				default:
					return fmt.Errorf("unknown aggressiveness %q", aggressiveness)
				}
				p.Aggressiveness = a
				changed = true
			}

			if changed {
				if err := app.Plans.UpdatePreferences(ctx, p); err != nil {
					return err
				}
			}

			state := formatter.StyleGreen.Render("enabled")
			if !p.Enabled {
				state = formatter.StyleRed.Render("disabled")
			}
			fmt.Printf("%s %s\n", formatter.Dim("Coach:"), state)
			fmt.Printf("%s %s\n", formatter.Dim("Frequency:"), p.Frequency)
			fmt.Printf("%s %s\n", formatter.Dim("Aggressiveness:"), p.Aggressiveness)
			return nil
		},
	}

	cmd.Flags().BoolVar(&enabled, "enable", false, "Turn the adaptive coach on")
	cmd.Flags().BoolVar(&disabled, "disable", false, "Turn the adaptive coach off")
	cmd.Flags().StringVar(&frequency, "frequency", "", "Analysis frequency: daily, weekly, before_key_workouts")
	cmd.Flags().StringVar(&aggressiveness, "aggressiveness", "", "Threshold tuning: aggressive, balanced, conservative")
	cmd.MarkFlagsMutuallyExclusive("enable", "disable")

	return cmd
}
