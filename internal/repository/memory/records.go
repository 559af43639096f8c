package memory

import (
	"context"
	"time"

	"github.com/Behyna/saldo-service/internal/model"
	"github.com/Behyna/saldo-service/internal/repository"
)

var (
	_ repository.TopupRepository    = (*TopupStore)(nil)
	_ repository.TransferRepository = (*TransferStore)(nil)
	_ repository.WithdrawRepository = (*WithdrawStore)(nil)
)

type TopupStore struct {
	rows *table[model.Topup]
}

func NewTopupStore() *TopupStore {
	return &TopupStore{rows: newTable(func(t *model.Topup) *int64 { return &t.ID })}
}

func (s *TopupStore) Create(_ context.Context, topup *model.Topup) error {
	topup.CreatedAt = time.Now()
	topup.UpdatedAt = topup.CreatedAt
	s.rows.insert(topup)
	return nil
}

func (s *TopupStore) FindByID(_ context.Context, id int64) (model.Topup, error) {
	topup, ok := s.rows.get(id)
	if !ok {
		return model.Topup{}, repository.ErrTopupNotFound
	}
	return topup, nil
}

func (s *TopupStore) FindAll(_ context.Context) ([]model.Topup, error) {
	return s.rows.filter(nil), nil
}

func (s *TopupStore) FindByUserID(_ context.Context, userID int64) ([]model.Topup, error) {
	return s.rows.filter(func(t model.Topup) bool { return t.UserID == userID }), nil
}

func (s *TopupStore) Update(_ context.Context, topup *model.Topup) error {
	current, ok := s.rows.get(topup.ID)
	if !ok {
		return repository.ErrTopupNotFound
	}

	current.Amount = topup.Amount
	current.Method = topup.Method
	current.UpdatedAt = time.Now()
	if !s.rows.replace(&current) {
		return repository.ErrTopupNotFound
	}
	topup.UpdatedAt = current.UpdatedAt
	return nil
}

func (s *TopupStore) Delete(_ context.Context, id int64) error {
	if !s.rows.remove(id) {
		return repository.ErrTopupNotFound
	}
	return nil
}

type TransferStore struct {
	rows *table[model.Transfer]
}

func NewTransferStore() *TransferStore {
	return &TransferStore{rows: newTable(func(t *model.Transfer) *int64 { return &t.ID })}
}

func (s *TransferStore) Create(_ context.Context, transfer *model.Transfer) error {
	transfer.CreatedAt = time.Now()
	transfer.UpdatedAt = transfer.CreatedAt
	s.rows.insert(transfer)
	return nil
}

func (s *TransferStore) FindByID(_ context.Context, id int64) (model.Transfer, error) {
	transfer, ok := s.rows.get(id)
	if !ok {
		return model.Transfer{}, repository.ErrTransferNotFound
	}
	return transfer, nil
}

func (s *TransferStore) FindAll(_ context.Context) ([]model.Transfer, error) {
	return s.rows.filter(nil), nil
}

func (s *TransferStore) FindByUserID(_ context.Context, userID int64) ([]model.Transfer, error) {
	return s.rows.filter(func(t model.Transfer) bool {
		return t.FromUserID == userID || t.ToUserID == userID
	}), nil
}

func (s *TransferStore) Update(_ context.Context, transfer *model.Transfer) error {
	current, ok := s.rows.get(transfer.ID)
	if !ok {
		return repository.ErrTransferNotFound
	}

	current.Amount = transfer.Amount
	current.UpdatedAt = time.Now()
	if !s.rows.replace(&current) {
		return repository.ErrTransferNotFound
	}
	transfer.UpdatedAt = current.UpdatedAt
	return nil
}

func (s *TransferStore) Delete(_ context.Context, id int64) error {
	if !s.rows.remove(id) {
		return repository.ErrTransferNotFound
	}
	return nil
}

type WithdrawStore struct {
	rows *table[model.Withdraw]
}

func NewWithdrawStore() *WithdrawStore {
	return &WithdrawStore{rows: newTable(func(w *model.Withdraw) *int64 { return &w.ID })}
}

func (s *WithdrawStore) Create(_ context.Context, withdraw *model.Withdraw) error {
	withdraw.CreatedAt = time.Now()
	withdraw.UpdatedAt = withdraw.CreatedAt
	s.rows.insert(withdraw)
	return nil
}

func (s *WithdrawStore) FindByID(_ context.Context, id int64) (model.Withdraw, error) {
	withdraw, ok := s.rows.get(id)
	if !ok {
		return model.Withdraw{}, repository.ErrWithdrawNotFound
	}
	return withdraw, nil
}

func (s *WithdrawStore) FindAll(_ context.Context) ([]model.Withdraw, error) {
	return s.rows.filter(nil), nil
}

func (s *WithdrawStore) FindByUserID(_ context.Context, userID int64) ([]model.Withdraw, error) {
	return s.rows.filter(func(w model.Withdraw) bool { return w.UserID == userID }), nil
}

func (s *WithdrawStore) Update(_ context.Context, withdraw *model.Withdraw) error {
	current, ok := s.rows.get(withdraw.ID)
	if !ok {
		return repository.ErrWithdrawNotFound
	}

	current.Amount = withdraw.Amount
	current.WithdrawTime = withdraw.WithdrawTime
	current.UpdatedAt = time.Now()
	if !s.rows.replace(&current) {
		return repository.ErrWithdrawNotFound
	}
	withdraw.UpdatedAt = current.UpdatedAt
	return nil
}

func (s *WithdrawStore) Delete(_ context.Context, id int64) error {
	if !s.rows.remove(id) {
		return repository.ErrWithdrawNotFound
	}
	return nil
}
