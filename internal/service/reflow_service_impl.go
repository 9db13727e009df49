package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/reflow/internal/app"
	"github.com/alexanderramin/reflow/internal/db"
	"github.com/alexanderramin/reflow/internal/domain"
	"github.com/alexanderramin/reflow/internal/importer"
	"github.com/alexanderramin/reflow/internal/repository"
	"github.com/alexanderramin/reflow/internal/scheduler"
)

type reflowService struct {
	centers  repository.WorkCenterRepo
	orders   repository.WorkOrderRepo
	mos      repository.ManufacturingOrderRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewReflowService(
	centers repository.WorkCenterRepo,
	orders repository.WorkOrderRepo,
	mos repository.ManufacturingOrderRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ReflowService {
	return &reflowService{
		centers:  centers,
		orders:   orders,
		mos:      mos,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *reflowService) Reflow(ctx context.Context, req app.ReflowRequest) (resp *app.ReflowResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"dry_run": req.DryRun}
	defer func() { observe(ctx, s.observer, "reflow", startedAt, fields, err) }()

	centers, err := s.centers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading work centers: %w", err)
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading work orders: %w", err)
	}
	mos, err := s.mos.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading manufacturing orders: %w", err)
	}

	resp, err = runReflow(orders, centers, mos, req, fields)
	if err != nil {
		return nil, err
	}
	if req.DryRun || len(resp.Changes) == 0 {
		return resp, nil
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txOrders := repository.NewSQLiteWorkOrderRepo(tx)
		for _, c := range resp.Changes {
			if err := txOrders.UpdateTimes(ctx, c.WorkOrderID, c.NewStart, c.NewEnd, resp.GeneratedAt); err != nil {
				return fmt.Errorf("saving work order %s: %w", c.WorkOrderID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *reflowService) Simulate(ctx context.Context, schema *importer.ScenarioSchema, req app.ReflowRequest) (resp *app.ReflowResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"dry_run": true}
	defer func() { observe(ctx, s.observer, "simulate", startedAt, fields, err) }()

	if errs := importer.ValidateScenario(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	scenario, err := importer.Convert(schema, 1)
	if err != nil {
		return nil, fmt.Errorf("converting scenario: %w", err)
	}

	req.DryRun = true
	return runReflow(scenario.WorkOrders, scenario.WorkCenters, scenario.ManufacturingOrders, req, fields)
}

func (s *reflowService) Check(ctx context.Context) (violations []scheduler.Violation, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "check", startedAt, fields, err) }()

	centers, err := s.centers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading work centers: %w", err)
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading work orders: %w", err)
	}

	violations = scheduler.Verify(orders, centers)
	fields["work_order_count"] = len(orders)
	fields["violation_count"] = len(violations)
	return violations, nil
}

// runReflow is the storage-free part of a reflow use case. It records the
// request and outcome in fields for the observer.
func runReflow(
	orders []*domain.WorkOrder,
	centers []*domain.WorkCenter,
	mos []*domain.ManufacturingOrder,
	req app.ReflowRequest,
	fields map[string]any,
) (*app.ReflowResponse, error) {
	now := time.Now().UTC().Truncate(time.Second)
	if req.Now != nil {
		now = req.Now.UTC()
	}
	policy := req.Policy
	if policy == "" {
		policy = scheduler.PolicyResume
	}
	fields["policy"] = string(policy)
	fields["work_order_count"] = len(orders)

	result, err := scheduler.Reflow(orders, centers, mos,
		scheduler.WithMaintenancePolicy(policy),
		scheduler.WithClock(func() time.Time { return now }),
	)
	if err != nil {
		return nil, mapReflowError(err)
	}
	fields["change_count"] = len(result.Changes)

	return &app.ReflowResponse{
		GeneratedAt:   now,
		Policy:        policy,
		DryRun:        req.DryRun,
		WorkOrders:    result.WorkOrders,
		Changes:       result.Changes,
		Explanations:  result.Explanations,
		TotalDelayMin: totalDelay(result.Changes),
	}, nil
}
