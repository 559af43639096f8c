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

type TransferService interface {
	CreateTransfer(ctx context.Context, cmd CreateTransferCommand) (model.Transfer, error)
	UpdateTransfer(ctx context.Context, cmd UpdateTransferCommand) (model.Transfer, error)
	DeleteTransfer(ctx context.Context, transferID int64) error
	GetTransfer(ctx context.Context, transferID int64) (model.Transfer, error)
	GetTransfers(ctx context.Context) ([]model.Transfer, error)
	GetUserTransfers(ctx context.Context, userID int64) ([]model.Transfer, error)
}

type transferService struct {
	engine
	transferRepo repository.TransferRepository
}

func NewTransferService(transferRepo repository.TransferRepository, ledger *Ledger, users UserDirectory,
	reconciliation ReconciliationRecorder, cfg *config.Config, metrics *metrics.Metrics, logger *zap.Logger) TransferService {
	return &transferService{
		engine:       newEngine(ledger, users, reconciliation, cfg, metrics, logger),
		transferRepo: transferRepo,
	}
}

func (s *transferService) validateAmount(amount int64) error {
	if amount <= 0 || amount >= s.limits.MaxTransferAmount {
		return invalid("transfer amount must be greater than 0 and less than %d", s.limits.MaxTransferAmount)
	}
	return nil
}

func (s *transferService) CreateTransfer(ctx context.Context, cmd CreateTransferCommand) (model.Transfer, error) {
	ctx, cancel, op := s.begin(ctx, "create_transfer")
	defer cancel()

	if err := s.validateAmount(cmd.Amount); err != nil {
		return model.Transfer{}, s.reject(op, err)
	}
	if cmd.FromUserID == cmd.ToUserID {
		return model.Transfer{}, s.reject(op, invalid("cannot transfer to the same user"))
	}

	for _, userID := range []int64{cmd.FromUserID, cmd.ToUserID} {
		if err := s.requireUser(ctx, userID); err != nil {
			return model.Transfer{}, s.reject(op, err)
		}
	}

	unlock, err := s.ledger.Lock(ctx, cmd.FromUserID, cmd.ToUserID)
	if err != nil {
		return model.Transfer{}, s.reject(op, err)
	}
	defer unlock()

	sender, err := s.ledger.Get(ctx, cmd.FromUserID)
	if err != nil {
		return model.Transfer{}, s.reject(op, err)
	}
	if sender.TotalBalance < cmd.Amount {
		return model.Transfer{}, s.reject(op, insufficient(cmd.FromUserID, cmd.Amount, sender.TotalBalance))
	}

	transfer := model.Transfer{
		FromUserID:   cmd.FromUserID,
		ToUserID:     cmd.ToUserID,
		Amount:       cmd.Amount,
		TransferTime: time.Now(),
	}

	op.step("create_transfer_record",
		func(ctx context.Context) error { return s.transferRepo.Create(ctx, &transfer) },
		func(ctx context.Context) error { return s.transferRepo.Delete(ctx, transfer.ID) },
		deleteRecord(model.RecordKindTransfer, &transfer.ID))
	op.step("debit_sender",
		s.apply(cmd.FromUserID, -cmd.Amount, nil),
		s.apply(cmd.FromUserID, cmd.Amount, nil),
		func() model.Reconciliation {
			return adjustBalance(model.RecordKindTransfer, transfer.ID, cmd.FromUserID, cmd.Amount)()
		})
	op.step("credit_receiver",
		func(ctx context.Context) error {
			_, err := s.ledger.Apply(ctx, BalanceChange{UserID: cmd.ToUserID, Delta: cmd.Amount, CreateIfMissing: true})
			return err
		},
		nil, nil)

	if err := s.execute(ctx, op); err != nil {
		return model.Transfer{}, err
	}

	s.logger.Info("Transfer created",
		zap.Int64("transfer_id", transfer.ID),
		zap.Int64("from_user_id", transfer.FromUserID),
		zap.Int64("to_user_id", transfer.ToUserID),
		zap.Int64("amount", transfer.Amount))

	return transfer, nil
}

func (s *transferService) UpdateTransfer(ctx context.Context, cmd UpdateTransferCommand) (model.Transfer, error) {
	ctx, cancel, op := s.begin(ctx, "update_transfer")
	defer cancel()

	if err := s.validateAmount(cmd.Amount); err != nil {
		return model.Transfer{}, s.reject(op, err)
	}

	transfer, err := s.find(ctx, cmd.TransferID)
	if err != nil {
		return model.Transfer{}, s.reject(op, err)
	}

	unlock, err := s.ledger.Lock(ctx, transfer.FromUserID, transfer.ToUserID)
	if err != nil {
		return model.Transfer{}, s.reject(op, err)
	}
	defer unlock()

	if transfer, err = s.find(ctx, cmd.TransferID); err != nil {
		return model.Transfer{}, s.reject(op, err)
	}

	sender, err := s.ledger.Get(ctx, transfer.FromUserID)
	if err != nil {
		return model.Transfer{}, s.reject(op, err)
	}
	receiver, err := s.ledger.Get(ctx, transfer.ToUserID)
	if err != nil {
		return model.Transfer{}, s.reject(op, err)
	}

	delta := cmd.Amount - transfer.Amount
	if sender.TotalBalance-delta < 0 {
		return model.Transfer{}, s.reject(op, insufficient(transfer.FromUserID, delta, sender.TotalBalance))
	}
	if receiver.TotalBalance+delta < 0 {
		return model.Transfer{}, s.reject(op, insufficient(transfer.ToUserID, -delta, receiver.TotalBalance))
	}

	updated := transfer
	updated.Amount = cmd.Amount

	op.step("adjust_sender",
		s.apply(transfer.FromUserID, -delta, nil),
		s.apply(transfer.FromUserID, delta, nil),
		adjustBalance(model.RecordKindTransfer, transfer.ID, transfer.FromUserID, delta))
	op.step("adjust_receiver",
		s.apply(transfer.ToUserID, delta, nil),
		s.apply(transfer.ToUserID, -delta, nil),
		adjustBalance(model.RecordKindTransfer, transfer.ID, transfer.ToUserID, -delta))
	op.step("update_transfer_record",
		func(ctx context.Context) error { return s.transferRepo.Update(ctx, &updated) },
		nil, nil)

	if err := s.execute(ctx, op); err != nil {
		return model.Transfer{}, err
	}

	s.logger.Info("Transfer updated",
		zap.Int64("transfer_id", updated.ID),
		zap.Int64("old_amount", transfer.Amount),
		zap.Int64("new_amount", updated.Amount))

	return updated, nil
}

func (s *transferService) DeleteTransfer(ctx context.Context, transferID int64) error {
	ctx, cancel, op := s.begin(ctx, "delete_transfer")
	defer cancel()

	transfer, err := s.find(ctx, transferID)
	if err != nil {
		return s.reject(op, err)
	}

	unlock, err := s.ledger.Lock(ctx, transfer.FromUserID, transfer.ToUserID)
	if err != nil {
		return s.reject(op, err)
	}
	defer unlock()

	if transfer, err = s.find(ctx, transferID); err != nil {
		return s.reject(op, err)
	}

	if _, err := s.ledger.Get(ctx, transfer.FromUserID); err != nil {
		return s.reject(op, err)
	}
	receiver, err := s.ledger.Get(ctx, transfer.ToUserID)
	if err != nil {
		return s.reject(op, err)
	}
	if receiver.TotalBalance < transfer.Amount {
		return s.reject(op, insufficient(transfer.ToUserID, transfer.Amount, receiver.TotalBalance))
	}

	op.step("debit_receiver",
		s.apply(transfer.ToUserID, -transfer.Amount, nil),
		s.apply(transfer.ToUserID, transfer.Amount, nil),
		adjustBalance(model.RecordKindTransfer, transfer.ID, transfer.ToUserID, transfer.Amount))
	op.step("credit_sender",
		s.apply(transfer.FromUserID, transfer.Amount, nil),
		s.apply(transfer.FromUserID, -transfer.Amount, nil),
		adjustBalance(model.RecordKindTransfer, transfer.ID, transfer.FromUserID, -transfer.Amount))
	op.step("delete_transfer_record",
		func(ctx context.Context) error { return s.transferRepo.Delete(ctx, transfer.ID) },
		nil, nil)

	if err := s.execute(ctx, op); err != nil {
		return err
	}

	s.logger.Info("Transfer deleted",
		zap.Int64("transfer_id", transfer.ID),
		zap.Int64("amount", transfer.Amount))

	return nil
}

func (s *transferService) GetTransfer(ctx context.Context, transferID int64) (model.Transfer, error) {
	return s.find(ctx, transferID)
}

func (s *transferService) GetTransfers(ctx context.Context) ([]model.Transfer, error) {
	transfers, err := s.transferRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list transfers", zap.Error(err))
		return nil, operationFailed(err)
	}

	return transfers, nil
}

func (s *transferService) GetUserTransfers(ctx context.Context, userID int64) ([]model.Transfer, error) {
	transfers, err := s.transferRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list user transfers", zap.Int64("user_id", userID), zap.Error(err))
		return nil, operationFailed(err)
	}

	return transfers, nil
}

func (s *transferService) find(ctx context.Context, transferID int64) (model.Transfer, error) {
	transfer, err := s.transferRepo.FindByID(ctx, transferID)
	if err != nil {
		if errors.Is(err, repository.ErrTransferNotFound) {
			return model.Transfer{}, notFound(model.RecordKindTransfer, transferID)
		}

		s.logger.Error("Failed to read transfer", zap.Int64("transfer_id", transferID), zap.Error(err))
		return model.Transfer{}, operationFailed(err)
	}

	return transfer, nil
}
