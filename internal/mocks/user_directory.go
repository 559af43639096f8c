package mocks

import (
	"context"

	"github.com/Behyna/saldo-service/internal/model"
	"github.com/stretchr/testify/mock"
)

type UserDirectory struct {
	mock.Mock
}

func (m *UserDirectory) Exists(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *UserDirectory) Get(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.User), args.Error(1)
}
