package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/reflow/internal/cli"
	"github.com/alexanderramin/reflow/internal/cli/formatter"
	"github.com/alexanderramin/reflow/internal/config"
	"github.com/alexanderramin/reflow/internal/db"
	"github.com/alexanderramin/reflow/internal/repository"
	"github.com/alexanderramin/reflow/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Plain output when piped or redirected.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		formatter.DisableColor()
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	centerRepo := repository.NewSQLiteWorkCenterRepo(database)
	orderRepo := repository.NewSQLiteWorkOrderRepo(database)
	moRepo := repository.NewSQLiteManufacturingOrderRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr, cfg.LogLevel)
	}

	app := &cli.App{
		Reflow:        service.NewReflowService(centerRepo, orderRepo, moRepo, uow, observer),
		Import:        service.NewImportService(uow, observer),
		WorkOrders:    service.NewWorkOrderService(orderRepo, centerRepo),
		DefaultPolicy: cfg.MaintenancePolicy,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd(app)
	rootCmd.SilenceErrors = true
	return rootCmd.ExecuteContext(ctx)
}
