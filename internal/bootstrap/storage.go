package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Behyna/saldo-service/internal/config"
	"github.com/Behyna/saldo-service/internal/model"
	"github.com/Behyna/saldo-service/internal/repository"
	"github.com/Behyna/saldo-service/internal/repository/memory"
	"github.com/Behyna/saldo-service/pkg/database"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Storage exposes every store to the fx graph. DB is nil for the memory driver.
type Storage struct {
	fx.Out

	DB              *sql.DB
	Saldos          repository.SaldoRepository
	Topups          repository.TopupRepository
	Transfers       repository.TransferRepository
	Withdraws       repository.WithdrawRepository
	Reconciliations repository.ReconciliationRepository
	Users           repository.UserRepository
	TxManager       repository.TxManager
}

func NewStorage(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) (Storage, error) {
	switch cfg.Database.Driver {
	case database.DriverMemory:
		logger.Warn("Using in-memory storage, balances do not survive a restart")
		return Storage{
			Saldos:          memory.NewSaldoStore(),
			Topups:          memory.NewTopupStore(),
			Transfers:       memory.NewTransferStore(),
			Withdraws:       memory.NewWithdrawStore(),
			Reconciliations: memory.NewReconciliationStore(),
			Users:           seededUsers(cfg.UserDirectory.SeedUsers),
			TxManager:       memory.TxManager{},
		}, nil
	case database.DriverMySQL, database.DriverPostgres:
	default:
		return Storage{}, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	db, err := database.NewConnection(context.Background(), cfg.Database, logger)
	if err != nil {
		return Storage{}, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return Storage{}, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return sqlDB.Close()
		},
	})

	return Storage{
		DB:              sqlDB,
		Saldos:          repository.NewSaldoRepository(db),
		Topups:          repository.NewTopupRepository(db),
		Transfers:       repository.NewTransferRepository(db),
		Withdraws:       repository.NewWithdrawRepository(db),
		Reconciliations: repository.NewReconciliationRepository(db),
		Users:           repository.NewUserRepository(db),
		TxManager:       repository.NewTransactionManager(db),
	}, nil
}

func seededUsers(ids []int64) *memory.UserStore {
	users := make([]model.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, model.User{ID: id})
	}

	return memory.NewUserStore(users...)
}
