package cli

import (
	"fmt"

	"github.com/alexanderramin/reflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <scenario-file>",
		Short: "Load work centers and work orders from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportScenario(cmd.Context(), args[0], replace)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(args[0], res))
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Delete all stored data before importing")

	return cmd
}
