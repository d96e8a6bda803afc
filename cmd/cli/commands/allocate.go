package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/eeep-admissions/pkg/core/services"
)

// AllocateCmd creates the allocate command
func AllocateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Score applicants and allocate the seats of every configured course",
		Long: `Reads the applicant form responses (from --csv, the configured form or the applicant sheet),
scores and classifies every candidate, allocates seats per course and prints the lists.

The result can be exported to CSV, published to the result spreadsheet and archived in the database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			csvPath, _ := cmd.Flags().GetString("csv")
			exportPath, _ := cmd.Flags().GetString("export")
			publish, _ := cmd.Flags().GetBool("publish")
			notify, _ := cmd.Flags().GetBool("notify")
			save, _ := cmd.Flags().GetBool("save")
			quiet, _ := cmd.Flags().GetBool("quiet")

			app.Logger.Debug("allocate command",
				zap.String("csv", csvPath),
				zap.String("export", exportPath),
				zap.Bool("publish", publish),
				zap.Bool("notify", notify),
				zap.Bool("save", save))

			var sources services.ApplicantSources
			switch {
			case csvPath != "":
				// read from disk, no client needed
			case app.Cfg.ApplicantFormID != "":
				client, err := app.FormsClient()
				if err != nil {
					return err
				}
				sources.Form = client
			case app.Cfg.ApplicantSheetID != "":
				client, err := app.SheetsClient()
				if err != nil {
					return err
				}
				sources.Sheet = client
			}

			rows, source, err := services.LoadApplicantRows(app.Ctx, csvPath, sources, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			result, err := services.AllocateAdmissions(app.Ctx, rows, app.Cfg, time.Now, app.Logger)
			if err != nil {
				return err
			}
			summary := &result.Summary

			if !quiet {
				for i := range summary.Results {
					course := &summary.Results[i]
					printCourseResult(app.Out, course, result.Reversions[course.Course])
				}
			}
			printStats(app.Out, services.Summarize(summary))
			if len(result.UnmatchedCourseNames) > 0 {
				warning.Fprintf(app.Out, "Cursos não configurados: %v\n", result.UnmatchedCourseNames)
			}
			printValidationErrors(app.Out, result.ValidationErrors)

			if exportPath != "" {
				if err := services.ExportResults(exportPath, summary, app.Logger); err != nil {
					return err
				}
				success.Fprintf(app.Out, "\n✓ Results exported to %s\n", exportPath)
			}

			if publish {
				client, err := app.SheetsClient()
				if err != nil {
					return err
				}
				if err := services.PublishResults(app.Ctx, client, app.Cfg.ResultSheetID, summary, app.Logger); err != nil {
					return err
				}
				success.Fprintf(app.Out, "✓ Results published to spreadsheet %s\n", app.Cfg.ResultSheetID)
			}

			if notify {
				if len(app.Cfg.NotifyEmails) == 0 {
					return fmt.Errorf("notifyEmails is not configured")
				}
				client, err := app.GmailClient()
				if err != nil {
					return err
				}
				sent, failed, err := services.NotifyResults(app.Ctx, client, app.Cfg.NotifyEmails, summary, app.Cfg.ResultSheetID, app.Logger)
				if err != nil {
					return err
				}
				for _, to := range sent {
					success.Fprintf(app.Out, "  ✓ Notified %s\n", to)
				}
				for _, fe := range failed {
					warning.Fprintf(app.Out, "  ✗ %s: %s\n", fe.Email, fe.Error)
				}
			}

			if save {
				database, err := app.Database()
				if err != nil {
					return err
				}
				run, err := services.SaveRun(app.Ctx, database, summary, source, time.Now(), app.Logger)
				if err != nil {
					return err
				}
				success.Fprintf(app.Out, "✓ Run saved with ID %s\n", run.ID)
			}

			fmt.Fprintln(app.Out)
			return nil
		},
	}

	cmd.Flags().String("csv", "", "Read applicants from this CSV file instead of the applicant sheet")
	cmd.Flags().String("export", "", "Write every published list to this CSV file")
	cmd.Flags().Bool("publish", false, "Publish one tab per course to the result spreadsheet")
	cmd.Flags().Bool("notify", false, "Email a summary to the configured notifyEmails")
	cmd.Flags().Bool("save", false, "Archive the run in the database")
	cmd.Flags().BoolP("quiet", "q", false, "Only print the summary")

	return cmd
}
