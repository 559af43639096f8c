package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Behyna/saldo-service/internal/model"
	"github.com/Behyna/saldo-service/internal/repository"
	"github.com/Behyna/saldo-service/internal/repository/memory"
	"github.com/Behyna/saldo-service/internal/service"
	"github.com/Behyna/saldo-service/pkg/mq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingReconciliationRepo struct {
	repository.ReconciliationRepository
	getErr error
}

func (r *failingReconciliationRepo) GetByIDForUpdate(ctx context.Context, id int64) (model.Reconciliation, error) {
	if r.getErr != nil {
		return model.Reconciliation{}, r.getErr
	}
	return r.ReconciliationRepository.GetByIDForUpdate(ctx, id)
}

// gatedReconciliationRepo holds every reader until want readers have arrived
// or wait has passed, so overlapping deliveries read the task together when
// nothing serializes them.
type gatedReconciliationRepo struct {
	repository.ReconciliationRepository
	want int
	wait time.Duration

	mu      sync.Mutex
	arrived int
	all     chan struct{}
}

func newGatedReconciliationRepo(repo repository.ReconciliationRepository, want int) *gatedReconciliationRepo {
	return &gatedReconciliationRepo{ReconciliationRepository: repo, want: want, wait: 100 * time.Millisecond, all: make(chan struct{})}
}

func (r *gatedReconciliationRepo) GetByIDForUpdate(ctx context.Context, id int64) (model.Reconciliation, error) {
	r.mu.Lock()
	r.arrived++
	if r.arrived == r.want {
		close(r.all)
	}
	r.mu.Unlock()

	select {
	case <-r.all:
	case <-time.After(r.wait):
	}
	return r.ReconciliationRepository.GetByIDForUpdate(ctx, id)
}

func deliverConcurrently(svc service.ReconciliationService, cmd service.ReconcileCommand, times int) []error {
	errs := make([]error, times)
	start := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(times)
	for i := 0; i < times; i++ {
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = svc.Reconcile(context.Background(), cmd)
		}(i)
	}
	close(start)
	wg.Wait()

	return errs
}

func record(t *testing.T, f *fixture, task model.Reconciliation) model.Reconciliation {
	t.Helper()

	tasks := []model.Reconciliation{task}
	require.NoError(t, f.reconciliation.Record(context.Background(), tasks))
	return tasks[0]
}

func (f *fixture) task(t *testing.T, id int64) model.Reconciliation {
	t.Helper()

	task, err := f.reconciliations.GetByID(context.Background(), id)
	require.NoError(t, err)
	return task
}

func TestReconciliationService_Record(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	task := record(t, f, model.Reconciliation{Action: model.ReconcileActionDeleteRecord, RecordKind: model.RecordKindTopup, RecordID: 7})

	assert.NotZero(t, task.ID)
	assert.Equal(t, model.ReconcileStatePending, task.State)

	queued, err := f.reconciliation.FindTasksToQueue(ctx, 10)
	require.NoError(t, err)
	require.Len(t, queued, 1)

	require.NoError(t, f.reconciliation.MarkTaskAsQueued(ctx, task.ID))

	queued, err = f.reconciliation.FindTasksToQueue(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, queued)
	assert.NotNil(t, f.task(t, task.ID).PublishedAt)
}

func TestReconciliationService_Reconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an orphaned record", func(t *testing.T) {
		f := newFixture(t)
		topup := model.Topup{UserID: 1, Amount: 10, Method: "ovo"}
		require.NoError(t, f.topups.Create(ctx, &topup))
		task := record(t, f, model.Reconciliation{Action: model.ReconcileActionDeleteRecord, RecordKind: model.RecordKindTopup, RecordID: topup.ID})

		require.NoError(t, f.reconciliation.Reconcile(ctx, service.ReconcileCommand{TaskID: task.ID}))

		_, err := f.topups.FindByID(ctx, topup.ID)
		assert.ErrorIs(t, err, repository.ErrTopupNotFound)
		assert.Equal(t, model.ReconcileStateResolved, f.task(t, task.ID).State)
	})

	t.Run("treats an already missing record as resolved", func(t *testing.T) {
		f := newFixture(t)
		task := record(t, f, model.Reconciliation{Action: model.ReconcileActionDeleteRecord, RecordKind: model.RecordKindTransfer, RecordID: 404})

		require.NoError(t, f.reconciliation.Reconcile(ctx, service.ReconcileCommand{TaskID: task.ID}))

		assert.Equal(t, model.ReconcileStateResolved, f.task(t, task.ID).State)
	})

	t.Run("adjusts a balance once", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1, 100)
		task := record(t, f, model.Reconciliation{Action: model.ReconcileActionAdjustBalance, RecordKind: model.RecordKindTransfer, UserID: 1, Amount: 40})

		require.NoError(t, f.reconciliation.Reconcile(ctx, service.ReconcileCommand{TaskID: task.ID}))
		require.NoError(t, f.reconciliation.Reconcile(ctx, service.ReconcileCommand{TaskID: task.ID}))

		assert.Equal(t, int64(140), f.balance(t, 1))
		assert.Equal(t, model.ReconcileStateResolved, f.task(t, task.ID).State)
	})

	t.Run("marks an impossible adjustment as failed", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1, 100)
		task := record(t, f, model.Reconciliation{Action: model.ReconcileActionAdjustBalance, RecordKind: model.RecordKindTopup, UserID: 1, Amount: -500})

		require.NoError(t, f.reconciliation.Reconcile(ctx, service.ReconcileCommand{TaskID: task.ID}))

		stored := f.task(t, task.ID)
		assert.Equal(t, model.ReconcileStateFailed, stored.State)
		require.NotNil(t, stored.LastError)
		assert.Contains(t, *stored.LastError, "requested 500")
		assert.Equal(t, int64(100), f.balance(t, 1))
	})

	t.Run("marks an unknown action as failed", func(t *testing.T) {
		f := newFixture(t)
		task := record(t, f, model.Reconciliation{Action: "REFUND", RecordKind: model.RecordKindTopup})

		require.NoError(t, f.reconciliation.Reconcile(ctx, service.ReconcileCommand{TaskID: task.ID}))

		assert.Equal(t, model.ReconcileStateFailed, f.task(t, task.ID).State)
	})

	t.Run("ignores an unknown task", func(t *testing.T) {
		f := newFixture(t)

		assert.NoError(t, f.reconciliation.Reconcile(ctx, service.ReconcileCommand{TaskID: 12345}))
	})

	t.Run("asks for a retry on storage errors", func(t *testing.T) {
		f := newFixture(t)
		repo := &failingReconciliationRepo{ReconciliationRepository: f.reconciliations, getErr: errors.New("db down")}
		svc := service.NewReconciliationService(repo, f.topups, f.transfers, f.withdraws, memory.TxManager{}, f.ledger,
			f.locker, nil, zap.NewNop())

		err := svc.Reconcile(ctx, service.ReconcileCommand{TaskID: 1})

		assert.True(t, mq.IsTemporary(err))
	})

	t.Run("asks for a retry when the record delete fails", func(t *testing.T) {
		f := newFixture(t)
		f.topups.deleteErr = errors.New("db down")
		task := record(t, f, model.Reconciliation{Action: model.ReconcileActionDeleteRecord, RecordKind: model.RecordKindTopup, RecordID: 1})

		err := f.reconciliation.Reconcile(ctx, service.ReconcileCommand{TaskID: task.ID})

		assert.True(t, mq.IsTemporary(err))
		assert.Equal(t, model.ReconcileStatePending, f.task(t, task.ID).State)
	})

	t.Run("applies a task delivered twice at once a single time", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1, 100)
		task := record(t, f, model.Reconciliation{Action: model.ReconcileActionAdjustBalance, RecordKind: model.RecordKindTopup, UserID: 1, Amount: 500})
		repo := newGatedReconciliationRepo(f.reconciliations, 2)
		svc := service.NewReconciliationService(repo, f.topups, f.transfers, f.withdraws, memory.TxManager{}, f.ledger,
			f.locker, nil, zap.NewNop())

		errs := deliverConcurrently(svc, service.ReconcileCommand{TaskID: task.ID}, 2)

		for _, err := range errs {
			assert.NoError(t, err)
		}
		assert.Equal(t, int64(600), f.balance(t, 1))
		assert.Equal(t, model.ReconcileStateResolved, f.task(t, task.ID).State)
	})

	t.Run("applies a task delivered many times at once a single time", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1, 100)
		task := record(t, f, model.Reconciliation{Action: model.ReconcileActionAdjustBalance, RecordKind: model.RecordKindTopup, UserID: 1, Amount: -60})

		errs := deliverConcurrently(f.reconciliation, service.ReconcileCommand{TaskID: task.ID}, 8)

		for _, err := range errs {
			assert.NoError(t, err)
		}
		assert.Equal(t, int64(40), f.balance(t, 1))
		assert.Equal(t, model.ReconcileStateResolved, f.task(t, task.ID).State)
	})

	t.Run("does not mark a task failed after another delivery resolved it", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1, 100)
		task := record(t, f, model.Reconciliation{Action: model.ReconcileActionAdjustBalance, RecordKind: model.RecordKindTopup, UserID: 1, Amount: 30})
		require.NoError(t, f.reconciliation.Reconcile(ctx, service.ReconcileCommand{TaskID: task.ID}))

		require.NoError(t, f.reconciliation.Reconcile(ctx, service.ReconcileCommand{TaskID: task.ID}))

		stored := f.task(t, task.ID)
		assert.Equal(t, model.ReconcileStateResolved, stored.State)
		assert.Nil(t, stored.LastError)
		assert.Equal(t, int64(130), f.balance(t, 1))
	})
}
