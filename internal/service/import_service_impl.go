package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/reflow/internal/app"
	"github.com/alexanderramin/reflow/internal/db"
	"github.com/alexanderramin/reflow/internal/importer"
	"github.com/alexanderramin/reflow/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService returns a service that loads scenario files into storage.
// Every import runs in a single transaction.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportScenario(ctx context.Context, filePath string, replace bool) (*app.ImportResult, error) {
	schema, err := importer.LoadScenarioSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading scenario file: %w", err)
	}
	return s.ImportScenarioFromSchema(ctx, schema, replace)
}

func (s *importService) ImportScenarioFromSchema(ctx context.Context, schema *importer.ScenarioSchema, replace bool) (result *app.ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"replace": replace}
	defer func() { observe(ctx, s.observer, "import-scenario", startedAt, fields, err) }()

	if errs := importer.ValidateScenario(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCenters := repository.NewSQLiteWorkCenterRepo(tx)
		txOrders := repository.NewSQLiteWorkOrderRepo(tx)
		txMOs := repository.NewSQLiteManufacturingOrderRepo(tx)

		if replace {
			if err := txOrders.DeleteAll(ctx); err != nil {
				return err
			}
			if err := txMOs.DeleteAll(ctx); err != nil {
				return err
			}
			if err := txCenters.DeleteAll(ctx); err != nil {
				return err
			}
		}

		firstSeq, err := txOrders.NextSeq(ctx)
		if err != nil {
			return err
		}
		scenario, err := importer.Convert(schema, firstSeq)
		if err != nil {
			return fmt.Errorf("converting scenario: %w", err)
		}

		res := &app.ImportResult{
			WorkCenterCount:         len(scenario.WorkCenters),
			ManufacturingOrderCount: len(scenario.ManufacturingOrders),
			WorkOrderCount:          len(scenario.WorkOrders),
			DependencyCount:         scenario.DependencyCount(),
		}
		for _, wc := range scenario.WorkCenters {
			if err := txCenters.Create(ctx, wc); err != nil {
				return fmt.Errorf("creating work center %q: %w", wc.ID, err)
			}
			res.ShiftCount += len(wc.Shifts)
			res.MaintenanceWindowCount += len(wc.MaintenanceWindows)
		}
		for _, mo := range scenario.ManufacturingOrders {
			if err := txMOs.Create(ctx, mo); err != nil {
				return fmt.Errorf("creating manufacturing order %q: %w", mo.ID, err)
			}
		}
		for _, wo := range scenario.WorkOrders {
			if err := txOrders.Create(ctx, wo); err != nil {
				return fmt.Errorf("creating work order %q: %w", wo.Number, err)
			}
		}

		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["work_center_count"] = result.WorkCenterCount
	fields["work_order_count"] = result.WorkOrderCount
	fields["dependency_count"] = result.DependencyCount
	return result, nil
}
