package service

import (
	"context"
	"errors"

	"github.com/Behyna/saldo-service/internal/model"
	"github.com/Behyna/saldo-service/internal/repository"
	"go.uber.org/zap"
)

// SaldoService is read-only; balances change only through the topup,
// transfer and withdraw services.
type SaldoService interface {
	GetSaldos(ctx context.Context) ([]model.Saldo, error)
	GetSaldo(ctx context.Context, saldoID int64) (model.Saldo, error)
	GetSaldoByUser(ctx context.Context, userID int64) (model.Saldo, error)
}

type saldoService struct {
	saldoRepo repository.SaldoRepository
	ledger    *Ledger
	logger    *zap.Logger
}

func NewSaldoService(saldoRepo repository.SaldoRepository, ledger *Ledger, logger *zap.Logger) SaldoService {
	return &saldoService{saldoRepo: saldoRepo, ledger: ledger, logger: logger}
}

func (s *saldoService) GetSaldos(ctx context.Context) ([]model.Saldo, error) {
	saldos, err := s.saldoRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list saldos", zap.Error(err))
		return nil, operationFailed(err)
	}

	return saldos, nil
}

func (s *saldoService) GetSaldo(ctx context.Context, saldoID int64) (model.Saldo, error) {
	saldo, err := s.saldoRepo.FindByID(ctx, saldoID)
	if err != nil {
		if errors.Is(err, repository.ErrSaldoNotFound) {
			return model.Saldo{}, notFound(kindSaldo, saldoID)
		}

		s.logger.Error("Failed to read saldo", zap.Int64("saldo_id", saldoID), zap.Error(err))
		return model.Saldo{}, operationFailed(err)
	}

	return saldo, nil
}

func (s *saldoService) GetSaldoByUser(ctx context.Context, userID int64) (model.Saldo, error) {
	return s.ledger.Get(ctx, userID)
}
