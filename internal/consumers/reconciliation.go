package consumers

import (
	"context"
	"encoding/json"

	"github.com/Behyna/saldo-service/internal/config"
	"github.com/Behyna/saldo-service/internal/service"
	"github.com/Behyna/saldo-service/pkg/mq"
	"go.uber.org/zap"
)

type ReconciliationConsumer interface {
	Consume(ctx context.Context) error
}

type reconciliationConsumer struct {
	service  service.ReconciliationService
	consumer mq.Consumer
	queue    string
	prefetch int
	logger   *zap.Logger
}

func NewReconciliationConsumer(service service.ReconciliationService, consumer mq.Consumer,
	cfg *config.Config, logger *zap.Logger) ReconciliationConsumer {
	return &reconciliationConsumer{
		service:  service,
		consumer: consumer,
		queue:    cfg.Reconciliation.Queue,
		prefetch: cfg.Reconciliation.Prefetch,
		logger:   logger,
	}
}

func (r *reconciliationConsumer) Consume(ctx context.Context) error {
	return r.consumer.Consume(ctx, r.prefetch, r.queue, r.handleMessage)
}

func (r *reconciliationConsumer) handleMessage(ctx context.Context, body []byte) error {
	r.logger.Info("received reconciliation task", zap.ByteString("body", body))

	var cmd service.ReconcileCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		r.logger.Warn("invalid reconciliation task", zap.Error(err))
		return err
	}

	return r.service.Reconcile(ctx, cmd)
}
