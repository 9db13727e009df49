package service

import (
	"context"

	"github.com/alexanderramin/reflow/internal/app"
	"github.com/alexanderramin/reflow/internal/domain"
)

// ReflowService reschedules work orders, stored or read from a scenario
// file, and checks the stored schedule for violations.
type ReflowService interface {
	app.ReflowUseCase
	app.SimulateUseCase
	app.CheckScheduleUseCase
}

type ImportService interface {
	app.ImportScenarioUseCase
}

type WorkOrderService interface {
	app.ListWorkOrdersUseCase
	GetByID(ctx context.Context, id string) (*domain.WorkOrder, error)
	ListWorkCenters(ctx context.Context) ([]*domain.WorkCenter, error)
}
