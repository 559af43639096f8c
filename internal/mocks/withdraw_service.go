package mocks

import (
	"context"

	"github.com/Behyna/saldo-service/internal/model"
	"github.com/Behyna/saldo-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type WithdrawService struct {
	mock.Mock
}

func (m *WithdrawService) CreateWithdraw(ctx context.Context, cmd service.CreateWithdrawCommand) (model.Withdraw, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(model.Withdraw), args.Error(1)
}

func (m *WithdrawService) UpdateWithdraw(ctx context.Context, cmd service.UpdateWithdrawCommand) (model.Withdraw, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(model.Withdraw), args.Error(1)
}

func (m *WithdrawService) DeleteWithdraw(ctx context.Context, withdrawID int64) error {
	args := m.Called(ctx, withdrawID)
	return args.Error(0)
}

func (m *WithdrawService) GetWithdraw(ctx context.Context, withdrawID int64) (model.Withdraw, error) {
	args := m.Called(ctx, withdrawID)
	return args.Get(0).(model.Withdraw), args.Error(1)
}

func (m *WithdrawService) GetWithdraws(ctx context.Context) ([]model.Withdraw, error) {
	args := m.Called(ctx)
	withdraws, _ := args.Get(0).([]model.Withdraw)
	return withdraws, args.Error(1)
}

func (m *WithdrawService) GetUserWithdraws(ctx context.Context, userID int64) ([]model.Withdraw, error) {
	args := m.Called(ctx, userID)
	withdraws, _ := args.Get(0).([]model.Withdraw)
	return withdraws, args.Error(1)
}
