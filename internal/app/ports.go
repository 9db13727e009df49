package app

import (
	"context"

	"github.com/alexanderramin/reflow/internal/domain"
	"github.com/alexanderramin/reflow/internal/importer"
	"github.com/alexanderramin/reflow/internal/scheduler"
)

type ReflowUseCase interface {
	Reflow(ctx context.Context, req ReflowRequest) (*ReflowResponse, error)
}

// SimulateUseCase reflows a scenario file in memory without touching storage.
type SimulateUseCase interface {
	Simulate(ctx context.Context, schema *importer.ScenarioSchema, req ReflowRequest) (*ReflowResponse, error)
}

type CheckScheduleUseCase interface {
	Check(ctx context.Context) ([]scheduler.Violation, error)
}

type ListWorkOrdersUseCase interface {
	List(ctx context.Context) ([]*domain.WorkOrder, error)
}

type ImportResult struct {
	WorkCenterCount         int
	ShiftCount              int
	MaintenanceWindowCount  int
	ManufacturingOrderCount int
	WorkOrderCount          int
	DependencyCount         int
}

type ImportScenarioUseCase interface {
	ImportScenario(ctx context.Context, filePath string, replace bool) (*ImportResult, error)
	ImportScenarioFromSchema(ctx context.Context, schema *importer.ScenarioSchema, replace bool) (*ImportResult, error)
}
