package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/saldo-service/internal/model"
	"gorm.io/gorm"
)

type TransferRepository interface {
	Create(ctx context.Context, transfer *model.Transfer) error
	FindByID(ctx context.Context, id int64) (model.Transfer, error)
	FindAll(ctx context.Context) ([]model.Transfer, error)
	// FindByUserID returns transfers where the user is either sender or receiver.
	FindByUserID(ctx context.Context, userID int64) ([]model.Transfer, error)
	Update(ctx context.Context, transfer *model.Transfer) error
	Delete(ctx context.Context, id int64) error
}

type transferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) TransferRepository {
	return &transferRepository{db: db}
}

func (r *transferRepository) Create(ctx context.Context, transfer *model.Transfer) error {
	return GetTx(ctx, r.db).Create(transfer).Error
}

func (r *transferRepository) FindByID(ctx context.Context, id int64) (model.Transfer, error) {
	var transfer model.Transfer
	if err := GetTx(ctx, r.db).Where("transfer_id = ?", id).First(&transfer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Transfer{}, ErrTransferNotFound
		}
		return model.Transfer{}, err
	}

	return transfer, nil
}

func (r *transferRepository) FindAll(ctx context.Context) ([]model.Transfer, error) {
	var transfers []model.Transfer
	if err := GetTx(ctx, r.db).Order("transfer_id").Find(&transfers).Error; err != nil {
		return nil, err
	}

	return transfers, nil
}

func (r *transferRepository) FindByUserID(ctx context.Context, userID int64) ([]model.Transfer, error) {
	var transfers []model.Transfer
	err := GetTx(ctx, r.db).
		Where("transfer_from = ? OR transfer_to = ?", userID, userID).
		Order("transfer_id").
		Find(&transfers).Error
	if err != nil {
		return nil, err
	}

	return transfers, nil
}

func (r *transferRepository) Update(ctx context.Context, transfer *model.Transfer) error {
	transfer.UpdatedAt = time.Now()
	result := GetTx(ctx, r.db).Model(&model.Transfer{}).
		Where("transfer_id = ?", transfer.ID).
		Updates(map[string]any{
			"transfer_amount": transfer.Amount,
			"updated_at":      transfer.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrTransferNotFound
	}

	return nil
}

func (r *transferRepository) Delete(ctx context.Context, id int64) error {
	result := GetTx(ctx, r.db).Where("transfer_id = ?", id).Delete(&model.Transfer{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrTransferNotFound
	}

	return nil
}
