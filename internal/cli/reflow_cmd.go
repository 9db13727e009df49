package cli

import (
	"fmt"
	"io"

	reflowapp "github.com/alexanderramin/reflow/internal/app"
	"github.com/alexanderramin/reflow/internal/cli/formatter"
	"github.com/alexanderramin/reflow/internal/importer"
	"github.com/alexanderramin/reflow/internal/scheduler"
	"github.com/spf13/cobra"
)

func newRunCmd(app *App) *cobra.Command {
	var (
		dryRun bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reflow the stored schedule and save the result",
		Args:  cobra.NoArgs,
	}
	policy := addPolicyFlag(cmd.Flags(), app.DefaultPolicy)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute the new schedule without saving it")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		req := reflowapp.NewReflowRequest()
		req.Policy = scheduler.MaintenancePolicy(*policy)
		req.DryRun = dryRun

		resp, err := app.Reflow.Reflow(cmd.Context(), req)
		if err != nil {
			return err
		}
		return printReflow(cmd.OutOrStdout(), resp, asJSON)
	}

	return cmd
}

func newSimulateCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "simulate <scenario-file>",
		Short: "Reflow a scenario file in memory without touching the database",
		Long: `Reflow a JSON or YAML scenario file and print the result. Nothing is read
from or written to the database.`,
		Args: cobra.ExactArgs(1),
	}
	policy := addPolicyFlag(cmd.Flags(), app.DefaultPolicy)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		schema, err := importer.LoadScenarioSchema(args[0])
		if err != nil {
			return fmt.Errorf("loading scenario file: %w", err)
		}

		req := reflowapp.NewReflowRequest()
		req.Policy = scheduler.MaintenancePolicy(*policy)

		resp, err := app.Reflow.Simulate(cmd.Context(), schema, req)
		if err != nil {
			return err
		}
		return printReflow(cmd.OutOrStdout(), resp, asJSON)
	}

	return cmd
}

func printReflow(w io.Writer, resp *reflowapp.ReflowResponse, asJSON bool) error {
	if asJSON {
		data, err := formatter.FormatReflowJSON(resp)
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		_, err = w.Write(data)
		return err
	}
	_, err := fmt.Fprint(w, formatter.FormatReflow(resp))
	return err
}
