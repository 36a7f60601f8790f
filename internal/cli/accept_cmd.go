package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/cli/formatter"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newAcceptCmd(app *App) *cobra.Command {
	var optionKey string

	cmd := &cobra.Command{
		Use:   "accept [id]",
		Short: "Accept a recommendation by choosing one of its options",
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

			key := optionKey
			if key == "" {
				if key, err = pickOption(rec); err != nil {
					return err
				}
			}

			mod, err := app.Advisor.Accept(ctx, rec.ID, key)
			if err != nil {
				return err
			}
			if mod == nil {
				fmt.Println(formatter.Dim("Noted. The plan stays as written."))
				return nil
			}
			fmt.Print(formatter.FormatModification(mod, time.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&optionKey, "option", "", "Option key to apply (prompts when omitted)")
	return cmd
}

// pickOption asks which option to apply when --option was not given.
func pickOption(rec *domain.Recommendation) (string, error) {
	if len(rec.Options) == 1 {
		return rec.Options[0].Key, nil
	}

	options := make([]huh.Option[string], 0, len(rec.Options))
	for _, opt := range rec.Options {
		label := opt.Label
		if opt.Impact != "" {
			label = fmt.Sprintf("%s (%s)", opt.Label, opt.Impact)
		}
		options = append(options, huh.NewOption(label, opt.Key))
	}

	var key string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(rec.Title).
				Description(rec.Message).
				Options(options...).
				Value(&key),
		),
	).WithTheme(apolloHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", err
	}
	return key, nil
}
