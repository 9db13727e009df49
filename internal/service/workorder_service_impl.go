package service

import (
	"context"

	"github.com/alexanderramin/reflow/internal/domain"
	"github.com/alexanderramin/reflow/internal/repository"
)

type workOrderService struct {
	orders  repository.WorkOrderRepo
	centers repository.WorkCenterRepo
}

func NewWorkOrderService(orders repository.WorkOrderRepo, centers repository.WorkCenterRepo) WorkOrderService {
	return &workOrderService{orders: orders, centers: centers}
}

func (s *workOrderService) List(ctx context.Context) ([]*domain.WorkOrder, error) {
	return s.orders.List(ctx)
}

func (s *workOrderService) GetByID(ctx context.Context, id string) (*domain.WorkOrder, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *workOrderService) ListWorkCenters(ctx context.Context) ([]*domain.WorkCenter, error) {
	return s.centers.List(ctx)
}
