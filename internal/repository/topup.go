package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/saldo-service/internal/model"
	"gorm.io/gorm"
)

type TopupRepository interface {
	Create(ctx context.Context, topup *model.Topup) error
	FindByID(ctx context.Context, id int64) (model.Topup, error)
	FindAll(ctx context.Context) ([]model.Topup, error)
	FindByUserID(ctx context.Context, userID int64) ([]model.Topup, error)
	Update(ctx context.Context, topup *model.Topup) error
	Delete(ctx context.Context, id int64) error
}

type topupRepository struct {
	db *gorm.DB
}

func NewTopupRepository(db *gorm.DB) TopupRepository {
	return &topupRepository{db: db}
}

func (r *topupRepository) Create(ctx context.Context, topup *model.Topup) error {
	return GetTx(ctx, r.db).Create(topup).Error
}

func (r *topupRepository) FindByID(ctx context.Context, id int64) (model.Topup, error) {
	var topup model.Topup
	if err := GetTx(ctx, r.db).Where("topup_id = ?", id).First(&topup).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Topup{}, ErrTopupNotFound
		}
		return model.Topup{}, err
	}

	return topup, nil
}

func (r *topupRepository) FindAll(ctx context.Context) ([]model.Topup, error) {
	var topups []model.Topup
	if err := GetTx(ctx, r.db).Order("topup_id").Find(&topups).Error; err != nil {
		return nil, err
	}

	return topups, nil
}

func (r *topupRepository) FindByUserID(ctx context.Context, userID int64) ([]model.Topup, error) {
	var topups []model.Topup
	if err := GetTx(ctx, r.db).Where("user_id = ?", userID).Order("topup_id").Find(&topups).Error; err != nil {
		return nil, err
	}

	return topups, nil
}

func (r *topupRepository) Update(ctx context.Context, topup *model.Topup) error {
	topup.UpdatedAt = time.Now()
	result := GetTx(ctx, r.db).Model(&model.Topup{}).
		Where("topup_id = ?", topup.ID).
		Updates(map[string]any{
			"topup_amount": topup.Amount,
			"topup_method": topup.Method,
			"updated_at":   topup.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrTopupNotFound
	}

	return nil
}

func (r *topupRepository) Delete(ctx context.Context, id int64) error {
	result := GetTx(ctx, r.db).Where("topup_id = ?", id).Delete(&model.Topup{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrTopupNotFound
	}

	return nil
}
