package bootstrap

import (
	"context"
	"fmt"

	"github.com/Behyna/saldo-service/internal/config"
	"github.com/Behyna/saldo-service/internal/metrics"
	"github.com/Behyna/saldo-service/internal/repository"
	"github.com/Behyna/saldo-service/internal/service"
	"github.com/Behyna/saldo-service/pkg/httpclient"
	"github.com/Behyna/saldo-service/pkg/locker"
	"github.com/Behyna/saldo-service/pkg/mq"
	"github.com/Behyna/saldo-service/pkg/userdirectory"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Engine provides the stores, the ledger and every service built on it.
var Engine = fx.Options(
	fx.Provide(
		config.Load,
		zap.NewProduction,
		NewRegisterer,
		metrics.NewMetrics,
		NewStorage,
		NewLocker,
		NewUserDirectory,

		service.NewLedger,
		service.NewReconciliationService,
		NewReconciliationRecorder,
		service.NewSaldoService,
		service.NewTopupService,
		service.NewTransferService,
		service.NewWithdrawService,
	),
)

// Messaging provides the RabbitMQ connection the reconciliation workers share.
var Messaging = fx.Options(
	fx.Provide(
		NewMQConnection,
	),
)

func NewRegisterer() prometheus.Registerer {
	return prometheus.DefaultRegisterer
}

func NewReconciliationRecorder(svc service.ReconciliationService) service.ReconciliationRecorder {
	return svc
}

func NewLocker(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) (locker.Locker, error) {
	switch cfg.Locker.Backend {
	case "", locker.BackendMemory:
		return locker.NewKeyedMutex(), nil
	case locker.BackendRedis:
		if !cfg.Redis.Enable {
			return nil, fmt.Errorf("locker backend %q requires redis.enable", locker.BackendRedis)
		}

		client, err := locker.NewRedisClient(cfg.Redis, logger)
		if err != nil {
			return nil, err
		}

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})

		return locker.NewRedisLocker(client, cfg.Locker, logger), nil
	default:
		return nil, fmt.Errorf("unsupported locker backend %q", cfg.Locker.Backend)
	}
}

func NewUserDirectory(cfg *config.Config, users repository.UserRepository) (service.UserDirectory, error) {
	switch cfg.UserDirectory.Backend {
	case "", userdirectory.BackendDatabase:
		return users, nil
	case userdirectory.BackendHTTP:
		client := httpclient.NewHTTPClient(cfg.UserDirectory.Timeout)
		return service.NewRemoteUserDirectory(userdirectory.NewClient(cfg.UserDirectory, client)), nil
	case userdirectory.BackendMemory:
		return seededUsers(cfg.UserDirectory.SeedUsers), nil
	default:
		return nil, fmt.Errorf("unsupported user directory backend %q", cfg.UserDirectory.Backend)
	}
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}
