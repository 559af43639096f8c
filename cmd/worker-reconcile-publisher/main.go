package main

import (
	"context"
	"time"

	"github.com/Behyna/saldo-service/internal/bootstrap"
	"github.com/Behyna/saldo-service/internal/config"
	"github.com/Behyna/saldo-service/internal/publishers"
	"github.com/Behyna/saldo-service/pkg/mq"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		bootstrap.Engine,
		bootstrap.Messaging,
		fx.Provide(
			NewMQPublisher,
			publishers.NewReconciliationPublisher,
		),
		fx.Invoke(runReconciliationPublisher),
	).Run()
}

func runReconciliationPublisher(cfg *config.Config, publisher publishers.ReconciliationPublisher,
	logger *zap.Logger, rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareQueues(cfg.Reconciliation.Queue); err != nil {
				logger.Error("declare queue failed", zap.Error(err))
				return err
			}
			logger.Info("queue declared", zap.String("queue", cfg.Reconciliation.Queue))

			interval := cfg.Reconciliation.Interval
			if interval <= 0 {
				interval = 30 * time.Second
			}

			go func() {
				ticker := time.NewTicker(interval)
				defer ticker.Stop()

				for {
					select {
					case <-appCtx.Done():
						return
					case <-ticker.C:
						if err := publisher.Publish(appCtx); err != nil {
							logger.Error("publishing reconciliation tasks failed", zap.Error(err))
						}
					}
				}
			}()

			logger.Info("reconciliation publisher started", zap.Duration("interval", interval))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping reconciliation publisher")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}
