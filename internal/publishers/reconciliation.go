package publishers

import (
	"context"

	"github.com/Behyna/saldo-service/internal/config"
	"github.com/Behyna/saldo-service/internal/service"
	"github.com/Behyna/saldo-service/pkg/mq"
	"go.uber.org/zap"
)

type ReconciliationPublisher interface {
	Publish(ctx context.Context) error
}

type reconciliationPublisher struct {
	service   service.ReconciliationService
	publisher mq.Publisher
	queue     string
	batchSize int
	logger    *zap.Logger
}

func NewReconciliationPublisher(service service.ReconciliationService, publisher mq.Publisher,
	cfg *config.Config, logger *zap.Logger) ReconciliationPublisher {
	return &reconciliationPublisher{
		service:   service,
		publisher: publisher,
		queue:     cfg.Reconciliation.Queue,
		batchSize: cfg.Reconciliation.BatchSize,
		logger:    logger,
	}
}

func (r *reconciliationPublisher) Publish(ctx context.Context) error {
	tasks, err := r.service.FindTasksToQueue(ctx, r.batchSize)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		return nil
	}

	r.logger.Info("Publishing reconciliation tasks", zap.Int("count", len(tasks)))

	successCount := 0
	for _, task := range tasks {
		cmd := service.ReconcileCommand{
			TaskID:     task.ID,
			Action:     task.Action,
			RecordKind: task.RecordKind,
			RecordID:   task.RecordID,
			UserID:     task.UserID,
			Amount:     task.Amount,
		}

		if err := mq.PublishJSON(ctx, r.publisher, r.queue, cmd); err != nil {
			r.logger.Error("Failed to publish reconciliation task",
				zap.Error(err),
				zap.Int64("task_id", task.ID))
			continue
		}

		if err := r.service.MarkTaskAsQueued(ctx, task.ID); err != nil {
			r.logger.Error("Failed to mark reconciliation task as queued",
				zap.Error(err),
				zap.Int64("task_id", task.ID))
			continue
		}

		successCount++
	}

	if successCount > 0 {
		r.logger.Info("Successfully published reconciliation tasks",
			zap.Int("published", successCount),
			zap.Int("total", len(tasks)))
	}

	return nil
}
