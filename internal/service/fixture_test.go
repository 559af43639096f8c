package service_test

import (
	"context"
	"testing"

	"github.com/Behyna/saldo-service/internal/config"
	"github.com/Behyna/saldo-service/internal/model"
	"github.com/Behyna/saldo-service/internal/repository"
	"github.com/Behyna/saldo-service/internal/repository/memory"
	"github.com/Behyna/saldo-service/internal/service"
	"github.com/Behyna/saldo-service/pkg/locker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// faultySaldoRepo lets a test fail individual balance writes.
type faultySaldoRepo struct {
	repository.SaldoRepository
	updateErr func(saldo model.Saldo) error
	createErr func(saldo model.Saldo) error
}

func (r *faultySaldoRepo) Update(ctx context.Context, saldo *model.Saldo) error {
	if r.updateErr != nil {
		if err := r.updateErr(*saldo); err != nil {
			return err
		}
	}
	return r.SaldoRepository.Update(ctx, saldo)
}

func (r *faultySaldoRepo) Create(ctx context.Context, saldo *model.Saldo) error {
	if r.createErr != nil {
		if err := r.createErr(*saldo); err != nil {
			return err
		}
	}
	return r.SaldoRepository.Create(ctx, saldo)
}

type faultyTopupRepo struct {
	repository.TopupRepository
	afterCreate func()
	updateErr   error
	deleteErr   error
}

func (r *faultyTopupRepo) Create(ctx context.Context, topup *model.Topup) error {
	if err := r.TopupRepository.Create(ctx, topup); err != nil {
		return err
	}
	if r.afterCreate != nil {
		r.afterCreate()
	}
	return nil
}

func (r *faultyTopupRepo) Update(ctx context.Context, topup *model.Topup) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	return r.TopupRepository.Update(ctx, topup)
}

func (r *faultyTopupRepo) Delete(ctx context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	return r.TopupRepository.Delete(ctx, id)
}

type faultyTransferRepo struct {
	repository.TransferRepository
	updateErr error
	deleteErr error
}

func (r *faultyTransferRepo) Update(ctx context.Context, transfer *model.Transfer) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	return r.TransferRepository.Update(ctx, transfer)
}

func (r *faultyTransferRepo) Delete(ctx context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	return r.TransferRepository.Delete(ctx, id)
}

type faultyWithdrawRepo struct {
	repository.WithdrawRepository
	createErr error
	deleteErr error
}

func (r *faultyWithdrawRepo) Create(ctx context.Context, withdraw *model.Withdraw) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.WithdrawRepository.Create(ctx, withdraw)
}

func (r *faultyWithdrawRepo) Delete(ctx context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	return r.WithdrawRepository.Delete(ctx, id)
}

type fixture struct {
	saldos          *faultySaldoRepo
	topups          *faultyTopupRepo
	transfers       *faultyTransferRepo
	withdraws       *faultyWithdrawRepo
	reconciliations *memory.ReconciliationStore
	users           *memory.UserStore
	locker          *locker.KeyedMutex

	ledger         *service.Ledger
	saldo          service.SaldoService
	topup          service.TopupService
	transfer       service.TransferService
	withdraw       service.WithdrawService
	reconciliation service.ReconciliationService
}

func testConfig() *config.Config {
	return &config.Config{
		Engine: config.Engine{
			MaxTopupAmount:    50000,
			MaxTransferAmount: 50000,
			CASRetries:        5,
		},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := zap.NewNop()
	cfg := testConfig()

	f := &fixture{
		saldos:          &faultySaldoRepo{SaldoRepository: memory.NewSaldoStore()},
		topups:          &faultyTopupRepo{TopupRepository: memory.NewTopupStore()},
		transfers:       &faultyTransferRepo{TransferRepository: memory.NewTransferStore()},
		withdraws:       &faultyWithdrawRepo{WithdrawRepository: memory.NewWithdrawStore()},
		reconciliations: memory.NewReconciliationStore(),
		users: memory.NewUserStore(
			model.User{ID: 1, Firstname: "Ayu"},
			model.User{ID: 2, Firstname: "Budi"},
			model.User{ID: 3, Firstname: "Citra"},
		),
	}

	f.locker = locker.NewKeyedMutex()
	f.ledger = service.NewLedger(f.saldos, f.locker, cfg, nil, logger)
	f.reconciliation = service.NewReconciliationService(f.reconciliations, f.topups, f.transfers, f.withdraws,
		memory.TxManager{}, f.ledger, f.locker, nil, logger)
	f.saldo = service.NewSaldoService(f.saldos, f.ledger, logger)
	f.topup = service.NewTopupService(f.topups, f.ledger, f.users, f.reconciliation, cfg, nil, logger)
	f.transfer = service.NewTransferService(f.transfers, f.ledger, f.users, f.reconciliation, cfg, nil, logger)
	f.withdraw = service.NewWithdrawService(f.withdraws, f.ledger, f.users, f.reconciliation, cfg, nil, logger)

	return f
}

func (f *fixture) fund(t *testing.T, userID, amount int64) model.Topup {
	t.Helper()

	topup, err := f.topup.CreateTopup(context.Background(), service.CreateTopupCommand{
		UserID: userID,
		Amount: amount,
		Method: "ovo",
	})
	require.NoError(t, err)
	return topup
}

func (f *fixture) balance(t *testing.T, userID int64) int64 {
	t.Helper()

	saldo, err := f.saldos.FindByUserID(context.Background(), userID)
	require.NoError(t, err)
	return saldo.TotalBalance
}

func (f *fixture) hasSaldo(userID int64) bool {
	_, err := f.saldos.FindByUserID(context.Background(), userID)
	return err == nil
}

func failFor(userID int64, err error) func(model.Saldo) error {
	return func(saldo model.Saldo) error {
		if saldo.UserID == userID {
			return err
		}
		return nil
	}
}
