package main

import (
	"context"

	"github.com/Behyna/saldo-service/internal/bootstrap"
	"github.com/Behyna/saldo-service/internal/config"
	"github.com/Behyna/saldo-service/internal/consumers"
	"github.com/Behyna/saldo-service/pkg/mq"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		bootstrap.Engine,
		bootstrap.Messaging,
		fx.Provide(
			NewMQConsumer,
			consumers.NewReconciliationConsumer,
		),
		fx.Invoke(runReconciliationConsumer),
	).Run()
}

func runReconciliationConsumer(cfg *config.Config, consumer consumers.ReconciliationConsumer, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareQueues(cfg.Reconciliation.Queue); err != nil {
				logger.Error("declare queue failed", zap.Error(err))
				return err
			}
			logger.Info("queue declared", zap.String("queue", cfg.Reconciliation.Queue))

			go func() {
				if err := consumer.Consume(appCtx); err != nil {
					logger.Error("consumer exited", zap.Error(err))
				}
			}()

			logger.Info("reconciliation consumer started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping reconciliation consumer")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewMQConsumer(rabbitMQ *mq.RabbitMQ) (mq.Consumer, error) {
	return rabbitMQ.CreateConsumer()
}
