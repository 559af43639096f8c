package service

import (
	"context"
	"errors"

	"github.com/Behyna/saldo-service/internal/model"
	"github.com/Behyna/saldo-service/internal/repository"
	"github.com/Behyna/saldo-service/pkg/userdirectory"
)

// UserDirectory resolves user ids. repository.UserRepository satisfies it
// directly; NewRemoteUserDirectory adapts the identity service client.
type UserDirectory interface {
	Exists(ctx context.Context, userID int64) (bool, error)
	Get(ctx context.Context, userID int64) (model.User, error)
}

type remoteUserDirectory struct {
	client userdirectory.Client
}

func NewRemoteUserDirectory(client userdirectory.Client) UserDirectory {
	return &remoteUserDirectory{client: client}
}

func (r *remoteUserDirectory) Exists(ctx context.Context, userID int64) (bool, error) {
	_, err := r.client.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userdirectory.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (r *remoteUserDirectory) Get(ctx context.Context, userID int64) (model.User, error) {
	user, err := r.client.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userdirectory.ErrUserNotFound) {
			return model.User{}, repository.ErrUserNotFound
		}
		return model.User{}, err
	}

	return model.User{
		ID:        user.ID,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}
