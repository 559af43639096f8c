package mocks

import (
	"context"

	"github.com/Behyna/saldo-service/internal/model"
	"github.com/Behyna/saldo-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type TopupService struct {
	mock.Mock
}

func (m *TopupService) CreateTopup(ctx context.Context, cmd service.CreateTopupCommand) (model.Topup, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(model.Topup), args.Error(1)
}

func (m *TopupService) UpdateTopup(ctx context.Context, cmd service.UpdateTopupCommand) (model.Topup, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(model.Topup), args.Error(1)
}

func (m *TopupService) DeleteTopup(ctx context.Context, topupID int64) error {
	args := m.Called(ctx, topupID)
	return args.Error(0)
}

func (m *TopupService) GetTopup(ctx context.Context, topupID int64) (model.Topup, error) {
	args := m.Called(ctx, topupID)
	return args.Get(0).(model.Topup), args.Error(1)
}

func (m *TopupService) GetTopups(ctx context.Context) ([]model.Topup, error) {
	args := m.Called(ctx)
	topups, _ := args.Get(0).([]model.Topup)
	return topups, args.Error(1)
}

func (m *TopupService) GetUserTopups(ctx context.Context, userID int64) ([]model.Topup, error) {
	args := m.Called(ctx, userID)
	topups, _ := args.Get(0).([]model.Topup)
	return topups, args.Error(1)
}
