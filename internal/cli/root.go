package cli

import (
	"github.com/alexanderramin/reflow/internal/scheduler"
	"github.com/alexanderramin/reflow/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Reflow     service.ReflowService
	Import     service.ImportService
	WorkOrders service.WorkOrderService

	// DefaultPolicy applies when --policy is not given.
	DefaultPolicy scheduler.MaintenancePolicy
}

// NewRootCmd creates the top-level "reflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "reflow",
		Short: "Reschedule work orders around dependencies, shifts and maintenance",
		Long: `reflow keeps a production schedule feasible. It moves work orders so that
dependencies finish first, each work center runs one order at a time, and work
happens only inside shifts and outside maintenance.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newImportCmd(app),
		newRunCmd(app),
		newSimulateCmd(app),
		newOrdersCmd(app),
		newCheckCmd(app),
	)

	return root
}
