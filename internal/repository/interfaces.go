package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/reflow/internal/domain"
)

// WorkCenterRepo stores work centers together with their shifts and
// maintenance windows.
type WorkCenterRepo interface {
	Create(ctx context.Context, wc *domain.WorkCenter) error
	GetByID(ctx context.Context, id string) (*domain.WorkCenter, error)
	List(ctx context.Context) ([]*domain.WorkCenter, error)
	DeleteAll(ctx context.Context) error
}

type WorkOrderRepo interface {
	Create(ctx context.Context, wo *domain.WorkOrder) error
	GetByID(ctx context.Context, id string) (*domain.WorkOrder, error)
	// List returns work orders in input order (seq).
	List(ctx context.Context) ([]*domain.WorkOrder, error)
	UpdateTimes(ctx context.Context, id string, start, end, updatedAt time.Time) error
	NextSeq(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type ManufacturingOrderRepo interface {
	Create(ctx context.Context, mo *domain.ManufacturingOrder) error
	List(ctx context.Context) ([]*domain.ManufacturingOrder, error)
	DeleteAll(ctx context.Context) error
}
