package memory

import (
	"context"
	"sync"

	"github.com/Behyna/saldo-service/internal/model"
	"github.com/Behyna/saldo-service/internal/repository"
)

var _ repository.UserRepository = (*UserStore)(nil)

type UserStore struct {
	mu    sync.RWMutex
	users map[int64]model.User
}

func NewUserStore(users ...model.User) *UserStore {
	s := &UserStore{users: make(map[int64]model.User, len(users))}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *UserStore) Add(user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
}

func (s *UserStore) Exists(_ context.Context, userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[userID]
	return ok, nil
}

func (s *UserStore) Get(_ context.Context, userID int64) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return user, nil
}
