package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/reflow/internal/domain"
	"github.com/alexanderramin/reflow/internal/repository"
	"github.com/alexanderramin/reflow/internal/testutil"
	"github.com/stretchr/testify/require"
)

const scenarioDir = "../../scenarios"

type testServices struct {
	db        *sql.DB
	centers   *repository.SQLiteWorkCenterRepo
	orders    *repository.SQLiteWorkOrderRepo
	mos       *repository.SQLiteManufacturingOrderRepo
	reflow    ReflowService
	importer  ImportService
	workOrder WorkOrderService
}

func setupServices(t *testing.T, observers ...UseCaseObserver) *testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	centers := repository.NewSQLiteWorkCenterRepo(database)
	orders := repository.NewSQLiteWorkOrderRepo(database)
	mos := repository.NewSQLiteManufacturingOrderRepo(database)
	return &testServices{
		db:        database,
		centers:   centers,
		orders:    orders,
		mos:       mos,
		reflow:    NewReflowService(centers, orders, mos, uow, observers...),
		importer:  NewImportService(uow, observers...),
		workOrder: NewWorkOrderService(orders, centers),
	}
}

func importFile(t *testing.T, s *testServices, name string) {
	t.Helper()
	_, err := s.importer.ImportScenario(context.Background(), scenarioDir+"/"+name, false)
	require.NoError(t, err)
}

func orderIDs(orders []*domain.WorkOrder) []string {
	ids := make([]string, len(orders))
	for i, wo := range orders {
		ids[i] = wo.ID
	}
	return ids
}

// recordingObserver keeps every event it receives.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingObserver) last(t *testing.T) UseCaseEvent {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.events)
	return r.events[len(r.events)-1]
}
