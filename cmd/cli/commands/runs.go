package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/eeep-admissions/pkg/core/services"
)

// RunsCmd creates the runs command
func RunsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List archived allocation runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("runs command")

			database, err := app.Database()
			if err != nil {
				return err
			}

			runs, err := services.ListRuns(app.Ctx, database, app.Logger)
			if err != nil {
				return err
			}

			printRuns(app.Out, runs)
			return nil
		},
	}
}

// ViewRunCmd creates the viewRun command
func ViewRunCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewRun <run_id>",
		Short: "Print every list of an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("viewRun command", zap.String("run_id", args[0]))

			database, err := app.Database()
			if err != nil {
				return err
			}

			view, err := services.ViewRun(app.Ctx, database, args[0], app.Logger)
			if err != nil {
				return err
			}

			printRunView(app.Out, view)
			return nil
		},
	}
}
