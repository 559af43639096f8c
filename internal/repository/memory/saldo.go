package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Behyna/saldo-service/internal/model"
	"github.com/Behyna/saldo-service/internal/repository"
)

var _ repository.SaldoRepository = (*SaldoStore)(nil)

// SaldoStore keeps one balance per user and enforces the same version check
// as the SQL implementation.
type SaldoStore struct {
	mu     sync.RWMutex
	byUser map[int64]model.Saldo
	nextID int64
}

func NewSaldoStore() *SaldoStore {
	return &SaldoStore{byUser: make(map[int64]model.Saldo)}
}

func (s *SaldoStore) Create(_ context.Context, saldo *model.Saldo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byUser[saldo.UserID]; ok {
		return repository.ErrSaldoExists
	}

	now := time.Now()
	s.nextID++
	saldo.ID = s.nextID
	saldo.CreatedAt = now
	saldo.UpdatedAt = now
	s.byUser[saldo.UserID] = *saldo
	return nil
}

func (s *SaldoStore) FindByID(_ context.Context, id int64) (model.Saldo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, saldo := range s.byUser {
		if saldo.ID == id {
			return saldo, nil
		}
	}
	return model.Saldo{}, repository.ErrSaldoNotFound
}

func (s *SaldoStore) FindByUserID(_ context.Context, userID int64) (model.Saldo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	saldo, ok := s.byUser[userID]
	if !ok {
		return model.Saldo{}, repository.ErrSaldoNotFound
	}
	return saldo, nil
}

func (s *SaldoStore) FindAll(_ context.Context) ([]model.Saldo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	saldos := make([]model.Saldo, 0, len(s.byUser))
	for _, saldo := range s.byUser {
		saldos = append(saldos, saldo)
	}
	sort.Slice(saldos, func(i, j int) bool { return saldos[i].ID < saldos[j].ID })
	return saldos, nil
}

func (s *SaldoStore) Update(_ context.Context, saldo *model.Saldo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byUser[saldo.UserID]
	if !ok || current.Version != saldo.Version {
		return repository.ErrVersionConflict
	}

	current.TotalBalance = saldo.TotalBalance
	current.WithdrawAmount = saldo.WithdrawAmount
	current.WithdrawTime = saldo.WithdrawTime
	current.Version++
	current.UpdatedAt = time.Now()
	s.byUser[saldo.UserID] = current

	saldo.Version = current.Version
	saldo.UpdatedAt = current.UpdatedAt
	return nil
}
