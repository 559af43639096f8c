package repository

import (
	"context"
	"errors"

	"github.com/Behyna/saldo-service/internal/model"
	"gorm.io/gorm"
)

// UserRepository reads the users table owned by the identity service.
type UserRepository interface {
	Exists(ctx context.Context, userID int64) (bool, error)
	Get(ctx context.Context, userID int64) (model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	var count int64
	if err := GetTx(ctx, r.db).Model(&model.User{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *userRepository) Get(ctx context.Context, userID int64) (model.User, error) {
	var user model.User
	if err := GetTx(ctx, r.db).Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}

	return user, nil
}
