package mocks

import (
	"context"

	"github.com/Behyna/saldo-service/pkg/mq"
	"github.com/stretchr/testify/mock"
)

type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, queue string, body []byte) error {
	args := m.Called(ctx, queue, body)
	return args.Error(0)
}

type Consumer struct {
	mock.Mock
}

func (m *Consumer) Consume(ctx context.Context, prefetch int, queue string, handler mq.Handle) error {
	args := m.Called(ctx, prefetch, queue, handler)
	return args.Error(0)
}
