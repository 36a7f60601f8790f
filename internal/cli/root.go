package cli

import (
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to the service interfaces used by CLI commands.
type App struct {
	Advisor service.AdvisorService
	Plans   service.PlanService
}

// NewRootCmd creates the top-level "apollo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "apollo",
		Short: "Marathon training plan with an adaptive coach",
	}

	root.AddCommand(
		newAnalyzeCmd(app),
		newRecsCmd(app),
		newAcceptCmd(app),
		newDismissCmd(app),
		newUndoCmd(app),
		newReviewCmd(app),
		newStatusCmd(app),
		newPlanCmd(app),
		newLogCmd(app),
		newScoresCmd(app),
		newPrefsCmd(app),
	)

	return root
}
