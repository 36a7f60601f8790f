package cli

import (
	"context"
	"fmt"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newUndoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undo [modification-id]",
		Short: "Undo the last applied plan modification",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			id, err := resolveModificationID(ctx, app, input)
			if err != nil {
				return err
			}

			undone, err := app.Advisor.Undo(ctx, id)
			if err != nil {
				return err
			}
			if !undone {
				fmt.Println(formatter.Dim("Nothing to undo; the plan is unchanged."))
				return nil
			}
			fmt.Println(formatter.StyleGreen.Render("Modification undone. The affected weeks are back as written."))
			return nil
		},
	}
}
