package service

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/saldo-service/internal/config"
	"github.com/Behyna/saldo-service/internal/metrics"
	"github.com/Behyna/saldo-service/internal/model"
	"github.com/Behyna/saldo-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TopupService interface {
	CreateTopup(ctx context.Context, cmd CreateTopupCommand) (model.Topup, error)
	UpdateTopup(ctx context.Context, cmd UpdateTopupCommand) (model.Topup, error)
	DeleteTopup(ctx context.Context, topupID int64) error
	GetTopup(ctx context.Context, topupID int64) (model.Topup, error)
	GetTopups(ctx context.Context) ([]model.Topup, error)
	GetUserTopups(ctx context.Context, userID int64) ([]model.Topup, error)
}

type topupService struct {
	engine
	topupRepo repository.TopupRepository
}

func NewTopupService(topupRepo repository.TopupRepository, ledger *Ledger, users UserDirectory,
	reconciliation ReconciliationRecorder, cfg *config.Config, metrics *metrics.Metrics, logger *zap.Logger) TopupService {
	return &topupService{
		engine:    newEngine(ledger, users, reconciliation, cfg, metrics, logger),
		topupRepo: topupRepo,
	}
}

func (s *topupService) validate(amount int64, method string) error {
	if amount < 1 || amount > s.limits.MaxTopupAmount {
		return invalid("topup amount must be between 1 and %d", s.limits.MaxTopupAmount)
	}

	if !IsPaymentMethod(method) {
		return invalid("unsupported payment method %q", method)
	}

	return nil
}

// validateUpdate checks an update before the stored topup is read. An empty
// method keeps the stored one.
func (s *topupService) validateUpdate(cmd UpdateTopupCommand) error {
	if cmd.Method == "" {
		if cmd.Amount < 1 || cmd.Amount > s.limits.MaxTopupAmount {
			return invalid("topup amount must be between 1 and %d", s.limits.MaxTopupAmount)
		}
		return nil
	}
	return s.validate(cmd.Amount, NormalizePaymentMethod(cmd.Method))
}

func (s *topupService) CreateTopup(ctx context.Context, cmd CreateTopupCommand) (model.Topup, error) {
	ctx, cancel, op := s.begin(ctx, "create_topup")
	defer cancel()

	method := NormalizePaymentMethod(cmd.Method)
	if err := s.validate(cmd.Amount, method); err != nil {
		return model.Topup{}, s.reject(op, err)
	}

	if err := s.requireUser(ctx, cmd.UserID); err != nil {
		return model.Topup{}, s.reject(op, err)
	}

	unlock, err := s.ledger.Lock(ctx, cmd.UserID)
	if err != nil {
		return model.Topup{}, s.reject(op, err)
	}
	defer unlock()

	topup := model.Topup{
		UserID:    cmd.UserID,
		TopupNo:   cmd.TopupNo,
		Amount:    cmd.Amount,
		Method:    method,
		TopupTime: time.Now(),
	}
	if topup.TopupNo == "" {
		topup.TopupNo = uuid.NewString()
	}

	op.step("create_topup_record",
		func(ctx context.Context) error { return s.topupRepo.Create(ctx, &topup) },
		func(ctx context.Context) error { return s.topupRepo.Delete(ctx, topup.ID) },
		deleteRecord(model.RecordKindTopup, &topup.ID))
	op.step("credit_balance",
		func(ctx context.Context) error {
			_, err := s.ledger.Apply(ctx, BalanceChange{UserID: cmd.UserID, Delta: cmd.Amount, CreateIfMissing: true})
			return err
		},
		nil, nil)

	if err := s.execute(ctx, op); err != nil {
		return model.Topup{}, err
	}

	s.logger.Info("Topup created",
		zap.Int64("topup_id", topup.ID),
		zap.Int64("user_id", topup.UserID),
		zap.Int64("amount", topup.Amount),
		zap.String("method", topup.Method))

	return topup, nil
}

func (s *topupService) UpdateTopup(ctx context.Context, cmd UpdateTopupCommand) (model.Topup, error) {
	ctx, cancel, op := s.begin(ctx, "update_topup")
	defer cancel()

	if err := s.validateUpdate(cmd); err != nil {
		return model.Topup{}, s.reject(op, err)
	}

	topup, err := s.find(ctx, cmd.TopupID)
	if err != nil {
		return model.Topup{}, s.reject(op, err)
	}

	method := topup.Method
	if cmd.Method != "" {
		method = NormalizePaymentMethod(cmd.Method)
	}

	unlock, err := s.ledger.Lock(ctx, topup.UserID)
	if err != nil {
		return model.Topup{}, s.reject(op, err)
	}
	defer unlock()

	// Re-read under the lock so the delta is computed against the amount
	// no concurrent update can still change.
	if topup, err = s.find(ctx, cmd.TopupID); err != nil {
		return model.Topup{}, s.reject(op, err)
	}

	if _, err := s.ledger.Get(ctx, topup.UserID); err != nil {
		return model.Topup{}, s.reject(op, err)
	}

	delta := cmd.Amount - topup.Amount
	updated := topup
	updated.Amount = cmd.Amount
	updated.Method = method

	op.step("apply_topup_delta",
		s.apply(topup.UserID, delta, nil),
		s.apply(topup.UserID, -delta, nil),
		adjustBalance(model.RecordKindTopup, topup.ID, topup.UserID, -delta))
	op.step("update_topup_record",
		func(ctx context.Context) error { return s.topupRepo.Update(ctx, &updated) },
		nil, nil)

	if err := s.execute(ctx, op); err != nil {
		return model.Topup{}, err
	}

	s.logger.Info("Topup updated",
		zap.Int64("topup_id", updated.ID),
		zap.Int64("user_id", updated.UserID),
		zap.Int64("old_amount", topup.Amount),
		zap.Int64("new_amount", updated.Amount))

	return updated, nil
}

func (s *topupService) DeleteTopup(ctx context.Context, topupID int64) error {
	ctx, cancel, op := s.begin(ctx, "delete_topup")
	defer cancel()

	topup, err := s.find(ctx, topupID)
	if err != nil {
		return s.reject(op, err)
	}

	unlock, err := s.ledger.Lock(ctx, topup.UserID)
	if err != nil {
		return s.reject(op, err)
	}
	defer unlock()

	if topup, err = s.find(ctx, topupID); err != nil {
		return s.reject(op, err)
	}

	saldo, err := s.ledger.Get(ctx, topup.UserID)
	if err != nil {
		return s.reject(op, err)
	}
	if saldo.TotalBalance < topup.Amount {
		return s.reject(op, insufficient(topup.UserID, topup.Amount, saldo.TotalBalance))
	}

	op.step("debit_balance",
		s.apply(topup.UserID, -topup.Amount, nil),
		s.apply(topup.UserID, topup.Amount, nil),
		adjustBalance(model.RecordKindTopup, topup.ID, topup.UserID, topup.Amount))
	op.step("delete_topup_record",
		func(ctx context.Context) error { return s.topupRepo.Delete(ctx, topup.ID) },
		nil, nil)

	if err := s.execute(ctx, op); err != nil {
		return err
	}

	s.logger.Info("Topup deleted",
		zap.Int64("topup_id", topup.ID),
		zap.Int64("user_id", topup.UserID),
		zap.Int64("amount", topup.Amount))

	return nil
}

func (s *topupService) GetTopup(ctx context.Context, topupID int64) (model.Topup, error) {
	return s.find(ctx, topupID)
}

func (s *topupService) GetTopups(ctx context.Context) ([]model.Topup, error) {
	topups, err := s.topupRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list topups", zap.Error(err))
		return nil, operationFailed(err)
	}

	return topups, nil
}

func (s *topupService) GetUserTopups(ctx context.Context, userID int64) ([]model.Topup, error) {
	topups, err := s.topupRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list user topups", zap.Int64("user_id", userID), zap.Error(err))
		return nil, operationFailed(err)
	}

	return topups, nil
}

func (s *topupService) find(ctx context.Context, topupID int64) (model.Topup, error) {
	topup, err := s.topupRepo.FindByID(ctx, topupID)
	if err != nil {
		if errors.Is(err, repository.ErrTopupNotFound) {
			return model.Topup{}, notFound(model.RecordKindTopup, topupID)
		}

		s.logger.Error("Failed to read topup", zap.Int64("topup_id", topupID), zap.Error(err))
		return model.Topup{}, operationFailed(err)
	}

	return topup, nil
}
