package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/saldo-service/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReconciliationRepository interface {
	Create(ctx context.Context, task *model.Reconciliation) error
	GetByID(ctx context.Context, id int64) (model.Reconciliation, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (model.Reconciliation, error)
	FindUnpublishedPending(ctx context.Context, limit int) ([]model.Reconciliation, error)
	MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error
	// UpdateState moves a task from one state to another. ErrReconciliationState
	// means the task was no longer in the from state.
	UpdateState(ctx context.Context, id int64, from, to string, lastError *string) error
}

type reconciliationRepository struct {
	db *gorm.DB
}

func NewReconciliationRepository(db *gorm.DB) ReconciliationRepository {
	return &reconciliationRepository{db: db}
}

func (r *reconciliationRepository) Create(ctx context.Context, task *model.Reconciliation) error {
	return GetTx(ctx, r.db).Create(task).Error
}

func (r *reconciliationRepository) GetByID(ctx context.Context, id int64) (model.Reconciliation, error) {
	var task model.Reconciliation
	if err := GetTx(ctx, r.db).Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Reconciliation{}, ErrReconciliationNotFound
		}
		return model.Reconciliation{}, err
	}

	return task, nil
}

func (r *reconciliationRepository) GetByIDForUpdate(ctx context.Context, id int64) (model.Reconciliation, error) {
	var task model.Reconciliation
	err := GetTx(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Reconciliation{}, ErrReconciliationNotFound
		}
		return model.Reconciliation{}, err
	}

	return task, nil
}

func (r *reconciliationRepository) FindUnpublishedPending(ctx context.Context, limit int) ([]model.Reconciliation, error) {
	var tasks []model.Reconciliation
	err := GetTx(ctx, r.db).
		Where("state = ? AND published = ?", model.ReconcileStatePending, false).
		Order("id").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *reconciliationRepository) MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error {
	result := GetTx(ctx, r.db).Model(&model.Reconciliation{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"published":    true,
			"published_at": publishedAt,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrReconciliationNotFound
	}

	return nil
}

func (r *reconciliationRepository) UpdateState(ctx context.Context, id int64, from, to string, lastError *string) error {
	result := GetTx(ctx, r.db).Model(&model.Reconciliation{}).
		Where("id = ? AND state = ?", id, from).
		Updates(map[string]any{
			"state":      to,
			"last_error": lastError,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrReconciliationState
	}

	return nil
}
