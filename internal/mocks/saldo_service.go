package mocks

import (
	"context"

	"github.com/Behyna/saldo-service/internal/model"
	"github.com/stretchr/testify/mock"
)

type SaldoService struct {
	mock.Mock
}

func (m *SaldoService) GetSaldos(ctx context.Context) ([]model.Saldo, error) {
	args := m.Called(ctx)
	saldos, _ := args.Get(0).([]model.Saldo)
	return saldos, args.Error(1)
}

func (m *SaldoService) GetSaldo(ctx context.Context, saldoID int64) (model.Saldo, error) {
	args := m.Called(ctx, saldoID)
	return args.Get(0).(model.Saldo), args.Error(1)
}

func (m *SaldoService) GetSaldoByUser(ctx context.Context, userID int64) (model.Saldo, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Saldo), args.Error(1)
}
