package commands

import (
	"strconv"

	"github.com/spf13/cobra"
)

// CoursesCmd creates the courses command
func CoursesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "courses",
		Short: "Show the configured courses and their seat tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("courses command")

			table := newTable(app.Out, []string{"Curso", "PCD", "Pública Centro", "Pública Ampla", "Privada Centro", "Privada Ampla", "Total"})
			for _, name := range app.Cfg.CourseNames() {
				c := app.Cfg.CapacityFor(name)
				table.Append([]string{
					name,
					strconv.Itoa(c.Disability),
					strconv.Itoa(c.PublicRegional),
					strconv.Itoa(c.PublicBroad),
					strconv.Itoa(c.PrivateRegional),
					strconv.Itoa(c.PrivateBroad),
					strconv.Itoa(c.Total()),
				})
			}
			table.Render()
			return nil
		},
	}
}
