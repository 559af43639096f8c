package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/saldo-service/internal/model"
	"gorm.io/gorm"
)

type WithdrawRepository interface {
	Create(ctx context.Context, withdraw *model.Withdraw) error
	FindByID(ctx context.Context, id int64) (model.Withdraw, error)
	FindAll(ctx context.Context) ([]model.Withdraw, error)
	FindByUserID(ctx context.Context, userID int64) ([]model.Withdraw, error)
	Update(ctx context.Context, withdraw *model.Withdraw) error
	Delete(ctx context.Context, id int64) error
}

type withdrawRepository struct {
	db *gorm.DB
}

func NewWithdrawRepository(db *gorm.DB) WithdrawRepository {
	return &withdrawRepository{db: db}
}

func (r *withdrawRepository) Create(ctx context.Context, withdraw *model.Withdraw) error {
	return GetTx(ctx, r.db).Create(withdraw).Error
}

func (r *withdrawRepository) FindByID(ctx context.Context, id int64) (model.Withdraw, error) {
	var withdraw model.Withdraw
	if err := GetTx(ctx, r.db).Where("withdraw_id = ?", id).First(&withdraw).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Withdraw{}, ErrWithdrawNotFound
		}
		return model.Withdraw{}, err
	}

	return withdraw, nil
}

func (r *withdrawRepository) FindAll(ctx context.Context) ([]model.Withdraw, error) {
	var withdraws []model.Withdraw
	if err := GetTx(ctx, r.db).Order("withdraw_id").Find(&withdraws).Error; err != nil {
		return nil, err
	}

	return withdraws, nil
}

func (r *withdrawRepository) FindByUserID(ctx context.Context, userID int64) ([]model.Withdraw, error) {
	var withdraws []model.Withdraw
	if err := GetTx(ctx, r.db).Where("user_id = ?", userID).Order("withdraw_id").Find(&withdraws).Error; err != nil {
		return nil, err
	}

	return withdraws, nil
}

func (r *withdrawRepository) Update(ctx context.Context, withdraw *model.Withdraw) error {
	withdraw.UpdatedAt = time.Now()
	result := GetTx(ctx, r.db).Model(&model.Withdraw{}).
		Where("withdraw_id = ?", withdraw.ID).
		Updates(map[string]any{
			"withdraw_amount": withdraw.Amount,
			"withdraw_time":   withdraw.WithdrawTime,
			"updated_at":      withdraw.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrWithdrawNotFound
	}

	return nil
}

func (r *withdrawRepository) Delete(ctx context.Context, id int64) error {
	result := GetTx(ctx, r.db).Where("withdraw_id = ?", id).Delete(&model.Withdraw{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrWithdrawNotFound
	}

	return nil
}
