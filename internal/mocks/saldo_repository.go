package mocks

import (
	"context"

	"github.com/Behyna/saldo-service/internal/model"
	"github.com/stretchr/testify/mock"
)

type SaldoRepository struct {
	mock.Mock
}

func (m *SaldoRepository) Create(ctx context.Context, saldo *model.Saldo) error {
	args := m.Called(ctx, saldo)
	return args.Error(0)
}

func (m *SaldoRepository) FindByID(ctx context.Context, id int64) (model.Saldo, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Saldo), args.Error(1)
}

func (m *SaldoRepository) FindByUserID(ctx context.Context, userID int64) (model.Saldo, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Saldo), args.Error(1)
}

func (m *SaldoRepository) FindAll(ctx context.Context) ([]model.Saldo, error) {
	args := m.Called(ctx)
	saldos, _ := args.Get(0).([]model.Saldo)
	return saldos, args.Error(1)
}

func (m *SaldoRepository) Update(ctx context.Context, saldo *model.Saldo) error {
	args := m.Called(ctx, saldo)
	return args.Error(0)
}
