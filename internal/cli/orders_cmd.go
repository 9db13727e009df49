package cli

import (
	"fmt"

	"github.com/alexanderramin/reflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newOrdersCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"ls"},
		Short:   "List stored work orders",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := app.WorkOrders.List(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				data, err := formatter.FormatWorkOrdersJSON(orders)
				if err != nil {
					return fmt.Errorf("encoding work orders: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWorkOrders(orders))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print work orders as JSON")

	return cmd
}

func newCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report constraint violations in the stored schedule",
		Long: `Check the stored schedule against dependencies, work center overlaps,
maintenance and shifts. Exits with an error when any violation is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			violations, err := app.Reflow.Check(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatViolations(violations))
			if len(violations) > 0 {
				return fmt.Errorf("schedule has %d violations; run 'reflow run' to fix them", len(violations))
			}
			return nil
		},
	}
}
