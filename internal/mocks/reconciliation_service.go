package mocks

import (
	"context"

	"github.com/Behyna/saldo-service/internal/model"
	"github.com/Behyna/saldo-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type ReconciliationService struct {
	mock.Mock
}

func (m *ReconciliationService) Record(ctx context.Context, tasks []model.Reconciliation) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

func (m *ReconciliationService) FindTasksToQueue(ctx context.Context, limit int) ([]model.Reconciliation, error) {
	args := m.Called(ctx, limit)
	tasks, _ := args.Get(0).([]model.Reconciliation)
	return tasks, args.Error(1)
}

func (m *ReconciliationService) MarkTaskAsQueued(ctx context.Context, taskID int64) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

func (m *ReconciliationService) Reconcile(ctx context.Context, cmd service.ReconcileCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}
