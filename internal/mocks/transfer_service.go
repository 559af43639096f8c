package mocks

import (
	"context"

	"github.com/Behyna/saldo-service/internal/model"
	"github.com/Behyna/saldo-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type TransferService struct {
	mock.Mock
}

func (m *TransferService) CreateTransfer(ctx context.Context, cmd service.CreateTransferCommand) (model.Transfer, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(model.Transfer), args.Error(1)
}

func (m *TransferService) UpdateTransfer(ctx context.Context, cmd service.UpdateTransferCommand) (model.Transfer, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(model.Transfer), args.Error(1)
}

func (m *TransferService) DeleteTransfer(ctx context.Context, transferID int64) error {
	args := m.Called(ctx, transferID)
	return args.Error(0)
}

func (m *TransferService) GetTransfer(ctx context.Context, transferID int64) (model.Transfer, error) {
	args := m.Called(ctx, transferID)
	return args.Get(0).(model.Transfer), args.Error(1)
}

func (m *TransferService) GetTransfers(ctx context.Context) ([]model.Transfer, error) {
	args := m.Called(ctx)
	transfers, _ := args.Get(0).([]model.Transfer)
	return transfers, args.Error(1)
}

func (m *TransferService) GetUserTransfers(ctx context.Context, userID int64) ([]model.Transfer, error) {
	args := m.Called(ctx, userID)
	transfers, _ := args.Get(0).([]model.Transfer)
	return transfers, args.Error(1)
}
