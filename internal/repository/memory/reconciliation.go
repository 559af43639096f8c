package memory

import (
	"context"
	"time"

	"github.com/Behyna/saldo-service/internal/model"
	"github.com/Behyna/saldo-service/internal/repository"
)

var _ repository.ReconciliationRepository = (*ReconciliationStore)(nil)

type ReconciliationStore struct {
	rows *table[model.Reconciliation]
}

func NewReconciliationStore() *ReconciliationStore {
	return &ReconciliationStore{rows: newTable(func(r *model.Reconciliation) *int64 { return &r.ID })}
}

func (s *ReconciliationStore) Create(_ context.Context, task *model.Reconciliation) error {
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	s.rows.insert(task)
	return nil
}

func (s *ReconciliationStore) GetByID(_ context.Context, id int64) (model.Reconciliation, error) {
	task, ok := s.rows.get(id)
	if !ok {
		return model.Reconciliation{}, repository.ErrReconciliationNotFound
	}
	return task, nil
}

// GetByIDForUpdate is GetByID: the store has no row locks, callers serialize
// per task through a locker.
func (s *ReconciliationStore) GetByIDForUpdate(ctx context.Context, id int64) (model.Reconciliation, error) {
	return s.GetByID(ctx, id)
}

func (s *ReconciliationStore) FindUnpublishedPending(_ context.Context, limit int) ([]model.Reconciliation, error) {
	tasks := s.rows.filter(func(r model.Reconciliation) bool {
		return r.State == model.ReconcileStatePending && !r.Published
	})
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks, nil
}

func (s *ReconciliationStore) MarkPublished(_ context.Context, id int64, publishedAt time.Time) error {
	task, ok := s.rows.get(id)
	if !ok {
		return repository.ErrReconciliationNotFound
	}

	task.Published = true
	task.PublishedAt = &publishedAt
	task.UpdatedAt = time.Now()
	s.rows.replace(&task)
	return nil
}

func (s *ReconciliationStore) UpdateState(_ context.Context, id int64, from, to string, lastError *string) error {
	found, err := s.rows.modify(id, func(task *model.Reconciliation) error {
		if task.State != from {
			return repository.ErrReconciliationState
		}
		task.State = to
		task.LastError = lastError
		task.UpdatedAt = time.Now()
		return nil
	})
	if !found {
		return repository.ErrReconciliationNotFound
	}
	return err
}
