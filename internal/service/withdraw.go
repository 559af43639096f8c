package service

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/saldo-service/internal/config"
	"github.com/Behyna/saldo-service/internal/metrics"
	"github.com/Behyna/saldo-service/internal/model"
	"github.com/Behyna/saldo-service/internal/repository"
	"go.uber.org/zap"
)

type WithdrawService interface {
	CreateWithdraw(ctx context.Context, cmd CreateWithdrawCommand) (model.Withdraw, error)
	UpdateWithdraw(ctx context.Context, cmd UpdateWithdrawCommand) (model.Withdraw, error)
	DeleteWithdraw(ctx context.Context, withdrawID int64) error
	GetWithdraw(ctx context.Context, withdrawID int64) (model.Withdraw, error)
	GetWithdraws(ctx context.Context) ([]model.Withdraw, error)
	GetUserWithdraws(ctx context.Context, userID int64) ([]model.Withdraw, error)
}

type withdrawService struct {
	engine
	withdrawRepo repository.WithdrawRepository
}

func NewWithdrawService(withdrawRepo repository.WithdrawRepository, ledger *Ledger, users UserDirectory,
	reconciliation ReconciliationRecorder, cfg *config.Config, metrics *metrics.Metrics, logger *zap.Logger) WithdrawService {
	return &withdrawService{
		engine:       newEngine(ledger, users, reconciliation, cfg, metrics, logger),
		withdrawRepo: withdrawRepo,
	}
}

func (s *withdrawService) CreateWithdraw(ctx context.Context, cmd CreateWithdrawCommand) (model.Withdraw, error) {
	ctx, cancel, op := s.begin(ctx, "create_withdraw")
	defer cancel()

	if cmd.Amount <= 0 {
		return model.Withdraw{}, s.reject(op, invalid("withdraw amount must be greater than 0"))
	}

	if err := s.requireUser(ctx, cmd.UserID); err != nil {
		return model.Withdraw{}, s.reject(op, err)
	}

	unlock, err := s.ledger.Lock(ctx, cmd.UserID)
	if err != nil {
		return model.Withdraw{}, s.reject(op, err)
	}
	defer unlock()

	saldo, err := s.ledger.Get(ctx, cmd.UserID)
	if err != nil {
		return model.Withdraw{}, s.reject(op, err)
	}
	if cmd.Amount > saldo.TotalBalance {
		return model.Withdraw{}, s.reject(op, insufficient(cmd.UserID, cmd.Amount, saldo.TotalBalance))
	}

	now := time.Now()
	amount := cmd.Amount
	withdraw := model.Withdraw{UserID: cmd.UserID, Amount: amount, WithdrawTime: now}

	op.step("create_withdraw_record",
		func(ctx context.Context) error { return s.withdrawRepo.Create(ctx, &withdraw) },
		func(ctx context.Context) error { return s.withdrawRepo.Delete(ctx, withdraw.ID) },
		deleteRecord(model.RecordKindWithdraw, &withdraw.ID))
	op.step("debit_balance",
		s.apply(cmd.UserID, -amount, &WithdrawalMeta{Amount: &amount, Time: &now}),
		nil, nil)

	if err := s.execute(ctx, op); err != nil {
		return model.Withdraw{}, err
	}

	s.logger.Info("Withdraw created",
		zap.Int64("withdraw_id", withdraw.ID),
		zap.Int64("user_id", withdraw.UserID),
		zap.Int64("amount", withdraw.Amount))

	return withdraw, nil
}

func (s *withdrawService) UpdateWithdraw(ctx context.Context, cmd UpdateWithdrawCommand) (model.Withdraw, error) {
	ctx, cancel, op := s.begin(ctx, "update_withdraw")
	defer cancel()

	if cmd.Amount <= 0 {
		return model.Withdraw{}, s.reject(op, invalid("withdraw amount must be greater than 0"))
	}

	withdraw, err := s.find(ctx, cmd.WithdrawID)
	if err != nil {
		return model.Withdraw{}, s.reject(op, err)
	}

	unlock, err := s.ledger.Lock(ctx, withdraw.UserID)
	if err != nil {
		return model.Withdraw{}, s.reject(op, err)
	}
	defer unlock()

	if withdraw, err = s.find(ctx, cmd.WithdrawID); err != nil {
		return model.Withdraw{}, s.reject(op, err)
	}

	saldo, err := s.ledger.Get(ctx, withdraw.UserID)
	if err != nil {
		return model.Withdraw{}, s.reject(op, err)
	}

	delta := cmd.Amount - withdraw.Amount
	if delta > saldo.TotalBalance {
		return model.Withdraw{}, s.reject(op, insufficient(withdraw.UserID, delta, saldo.TotalBalance))
	}

	now := time.Now()
	amount := cmd.Amount
	previous := &WithdrawalMeta{Amount: saldo.WithdrawAmount, Time: saldo.WithdrawTime}

	updated := withdraw
	updated.Amount = amount
	updated.WithdrawTime = now

	op.step("apply_withdraw_delta",
		s.apply(withdraw.UserID, -delta, &WithdrawalMeta{Amount: &amount, Time: &now}),
		s.apply(withdraw.UserID, delta, previous),
		adjustBalance(model.RecordKindWithdraw, withdraw.ID, withdraw.UserID, delta))
	op.step("update_withdraw_record",
		func(ctx context.Context) error { return s.withdrawRepo.Update(ctx, &updated) },
		nil, nil)

	if err := s.execute(ctx, op); err != nil {
		return model.Withdraw{}, err
	}

	s.logger.Info("Withdraw updated",
		zap.Int64("withdraw_id", updated.ID),
		zap.Int64("user_id", updated.UserID),
		zap.Int64("old_amount", withdraw.Amount),
		zap.Int64("new_amount", updated.Amount))

	return updated, nil
}

func (s *withdrawService) DeleteWithdraw(ctx context.Context, withdrawID int64) error {
	ctx, cancel, op := s.begin(ctx, "delete_withdraw")
	defer cancel()

	withdraw, err := s.find(ctx, withdrawID)
	if err != nil {
		return s.reject(op, err)
	}

	unlock, err := s.ledger.Lock(ctx, withdraw.UserID)
	if err != nil {
		return s.reject(op, err)
	}
	defer unlock()

	if withdraw, err = s.find(ctx, withdrawID); err != nil {
		return s.reject(op, err)
	}

	if _, err := s.ledger.Get(ctx, withdraw.UserID); err != nil {
		return s.reject(op, err)
	}

	op.step("credit_balance",
		s.apply(withdraw.UserID, withdraw.Amount, nil),
		s.apply(withdraw.UserID, -withdraw.Amount, nil),
		adjustBalance(model.RecordKindWithdraw, withdraw.ID, withdraw.UserID, -withdraw.Amount))
	op.step("delete_withdraw_record",
		func(ctx context.Context) error { return s.withdrawRepo.Delete(ctx, withdraw.ID) },
		nil, nil)

	if err := s.execute(ctx, op); err != nil {
		return err
	}

	s.logger.Info("Withdraw deleted",
		zap.Int64("withdraw_id", withdraw.ID),
		zap.Int64("user_id", withdraw.UserID),
		zap.Int64("amount", withdraw.Amount))

	return nil
}

func (s *withdrawService) GetWithdraw(ctx context.Context, withdrawID int64) (model.Withdraw, error) {
	return s.find(ctx, withdrawID)
}

func (s *withdrawService) GetWithdraws(ctx context.Context) ([]model.Withdraw, error) {
	withdraws, err := s.withdrawRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list withdraws", zap.Error(err))
		return nil, operationFailed(err)
	}

	return withdraws, nil
}

func (s *withdrawService) GetUserWithdraws(ctx context.Context, userID int64) ([]model.Withdraw, error) {
	withdraws, err := s.withdrawRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list user withdraws", zap.Int64("user_id", userID), zap.Error(err))
		return nil, operationFailed(err)
	}

	return withdraws, nil
}

func (s *withdrawService) find(ctx context.Context, withdrawID int64) (model.Withdraw, error) {
	withdraw, err := s.withdrawRepo.FindByID(ctx, withdrawID)
	if err != nil {
		if errors.Is(err, repository.ErrWithdrawNotFound) {
			return model.Withdraw{}, notFound(model.RecordKindWithdraw, withdrawID)
		}

		s.logger.Error("Failed to read withdraw", zap.Int64("withdraw_id", withdrawID), zap.Error(err))
		return model.Withdraw{}, operationFailed(err)
	}

	return withdraw, nil
}
