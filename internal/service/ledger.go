package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Behyna/saldo-service/internal/config"
	"github.com/Behyna/saldo-service/internal/constants"
	"github.com/Behyna/saldo-service/internal/metrics"
	"github.com/Behyna/saldo-service/internal/model"
	"github.com/Behyna/saldo-service/internal/repository"
	"github.com/Behyna/saldo-service/pkg/locker"
	"go.uber.org/zap"
)

const defaultCASRetries = 5

type BalanceChange struct {
	UserID int64
	Delta  int64
	// CreateIfMissing opens a balance at Delta when the user has none yet.
	CreateIfMissing bool
	// Withdrawal, when set, overwrites the last-withdrawal metadata.
	Withdrawal *WithdrawalMeta
}

type WithdrawalMeta struct {
	Amount *int64
	Time   *time.Time
}

// Ledger is the only writer of Saldo.TotalBalance. Every write is a
// version-checked update retried on conflict; callers serialize per user
// with Lock.
type Ledger struct {
	saldoRepo  repository.SaldoRepository
	locker     locker.Locker
	casRetries int
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewLedger(saldoRepo repository.SaldoRepository, locker locker.Locker, cfg *config.Config,
	metrics *metrics.Metrics, logger *zap.Logger) *Ledger {
	retries := cfg.Engine.CASRetries
	if retries <= 0 {
		retries = defaultCASRetries
	}

	return &Ledger{saldoRepo: saldoRepo, locker: locker, casRetries: retries, metrics: metrics, logger: logger}
}

func lockKey(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

func (l *Ledger) Lock(ctx context.Context, userIDs ...int64) (func(), error) {
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, lockKey(id))
	}

	unlock, err := l.locker.Lock(ctx, keys...)
	if err != nil {
		// Contention is worth a retry by the caller; a broken lock backend is not.
		if errors.Is(err, locker.ErrNotAcquired) || errors.Is(err, context.DeadlineExceeded) {
			l.logger.Warn("Failed to acquire balance lock",
				zap.Int64s("user_ids", userIDs),
				zap.Error(err))
			return nil, NewServiceError(constants.ErrCodeConflict, fmt.Errorf("%w: %w", ErrConflict, err))
		}

		l.logger.Error("Balance lock backend failed",
			zap.Int64s("user_ids", userIDs),
			zap.Error(err))
		return nil, operationFailed(err)
	}

	return unlock, nil
}

func (l *Ledger) Get(ctx context.Context, userID int64) (model.Saldo, error) {
	saldo, err := l.saldoRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSaldoNotFound) {
			return model.Saldo{}, notFound(kindSaldo, userID)
		}

		l.logger.Error("Failed to read saldo", zap.Int64("user_id", userID), zap.Error(err))
		return model.Saldo{}, operationFailed(err)
	}

	return saldo, nil
}

// Apply adds change.Delta to the user's balance. The result is never allowed
// to go below zero.
func (l *Ledger) Apply(ctx context.Context, change BalanceChange) (model.Saldo, error) {
	for attempt := 1; attempt <= l.casRetries; attempt++ {
		saldo, err := l.saldoRepo.FindByUserID(ctx, change.UserID)
		if errors.Is(err, repository.ErrSaldoNotFound) {
			if !change.CreateIfMissing {
				return model.Saldo{}, notFound(kindSaldo, change.UserID)
			}

			saldo, err = l.open(ctx, change)
			if errors.Is(err, repository.ErrSaldoExists) {
				l.metrics.RecordBalanceConflict("retry")
				continue
			}
			return saldo, err
		}

		if err != nil {
			l.logger.Error("Failed to read saldo for update",
				zap.Int64("user_id", change.UserID),
				zap.Error(err))
			return model.Saldo{}, balanceUpdateFailed(err)
		}

		next := saldo.TotalBalance + change.Delta
		if next < 0 {
			return model.Saldo{}, insufficient(change.UserID, -change.Delta, saldo.TotalBalance)
		}

		saldo.TotalBalance = next
		if change.Withdrawal != nil {
			saldo.WithdrawAmount = change.Withdrawal.Amount
			saldo.WithdrawTime = change.Withdrawal.Time
		}

		err = l.saldoRepo.Update(ctx, &saldo)
		if errors.Is(err, repository.ErrVersionConflict) {
			l.metrics.RecordBalanceConflict("retry")
			l.logger.Debug("Saldo version conflict, retrying",
				zap.Int64("user_id", change.UserID),
				zap.Int("attempt", attempt))
			continue
		}

		if err != nil {
			l.logger.Error("Failed to write saldo",
				zap.Int64("user_id", change.UserID),
				zap.Int64("delta", change.Delta),
				zap.Error(err))
			return model.Saldo{}, balanceUpdateFailed(err)
		}

		return saldo, nil
	}

	l.metrics.RecordBalanceConflict("exhausted")
	l.logger.Warn("Saldo update retries exhausted",
		zap.Int64("user_id", change.UserID),
		zap.Int("retries", l.casRetries))

	return model.Saldo{}, NewServiceError(constants.ErrCodeConflict, ErrConflict)
}

func (l *Ledger) open(ctx context.Context, change BalanceChange) (model.Saldo, error) {
	if change.Delta < 0 {
		return model.Saldo{}, insufficient(change.UserID, -change.Delta, 0)
	}

	saldo := model.Saldo{UserID: change.UserID, TotalBalance: change.Delta}
	if change.Withdrawal != nil {
		saldo.WithdrawAmount = change.Withdrawal.Amount
		saldo.WithdrawTime = change.Withdrawal.Time
	}

	if err := l.saldoRepo.Create(ctx, &saldo); err != nil {
		if errors.Is(err, repository.ErrSaldoExists) {
			return model.Saldo{}, err
		}

		l.logger.Error("Failed to create saldo",
			zap.Int64("user_id", change.UserID),
			zap.Error(err))
		return model.Saldo{}, balanceUpdateFailed(err)
	}

	l.logger.Info("Saldo opened",
		zap.Int64("user_id", change.UserID),
		zap.Int64("total_balance", saldo.TotalBalance))

	return saldo, nil
}
