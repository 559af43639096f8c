package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/saldo-service/internal/model"
	"gorm.io/gorm"
)

type SaldoRepository interface {
	Create(ctx context.Context, saldo *model.Saldo) error
	FindByID(ctx context.Context, id int64) (model.Saldo, error)
	FindByUserID(ctx context.Context, userID int64) (model.Saldo, error)
	FindAll(ctx context.Context) ([]model.Saldo, error)
	// Update writes saldo only if the stored version still equals saldo.Version,
	// then bumps saldo.Version. A stale version yields ErrVersionConflict.
	Update(ctx context.Context, saldo *model.Saldo) error
}

type saldoRepository struct {
	db *gorm.DB
}

func NewSaldoRepository(db *gorm.DB) SaldoRepository {
	return &saldoRepository{db: db}
}

func (r *saldoRepository) Create(ctx context.Context, saldo *model.Saldo) error {
	if err := GetTx(ctx, r.db).Create(saldo).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrSaldoExists
		}
		return err
	}

	return nil
}

func (r *saldoRepository) FindByID(ctx context.Context, id int64) (model.Saldo, error) {
	var saldo model.Saldo
	if err := GetTx(ctx, r.db).Where("saldo_id = ?", id).First(&saldo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Saldo{}, ErrSaldoNotFound
		}
		return model.Saldo{}, err
	}

	return saldo, nil
}

func (r *saldoRepository) FindByUserID(ctx context.Context, userID int64) (model.Saldo, error) {
	var saldo model.Saldo
	if err := GetTx(ctx, r.db).Where("user_id = ?", userID).First(&saldo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Saldo{}, ErrSaldoNotFound
		}
		return model.Saldo{}, err
	}

	return saldo, nil
}

func (r *saldoRepository) FindAll(ctx context.Context) ([]model.Saldo, error) {
	var saldos []model.Saldo
	if err := GetTx(ctx, r.db).Order("saldo_id").Find(&saldos).Error; err != nil {
		return nil, err
	}

	return saldos, nil
}

func (r *saldoRepository) Update(ctx context.Context, saldo *model.Saldo) error {
	now := time.Now()
	result := GetTx(ctx, r.db).Model(&model.Saldo{}).
		Where("user_id = ? AND version = ?", saldo.UserID, saldo.Version).
		Updates(map[string]any{
			"total_balance":   saldo.TotalBalance,
			"withdraw_amount": saldo.WithdrawAmount,
			"withdraw_time":   saldo.WithdrawTime,
			"version":         gorm.Expr("version + 1"),
			"updated_at":      now,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}

	saldo.Version++
	saldo.UpdatedAt = now
	return nil
}
