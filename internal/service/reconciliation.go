package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Behyna/saldo-service/internal/constants"
	"github.com/Behyna/saldo-service/internal/metrics"
	"github.com/Behyna/saldo-service/internal/model"
	"github.com/Behyna/saldo-service/internal/repository"
	"github.com/Behyna/saldo-service/pkg/locker"
	"github.com/Behyna/saldo-service/pkg/mq"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedTask = errors.New("unsupported reconciliation task")

	errTaskHandled = errors.New("reconciliation task already handled")
)

// ReconciliationRecorder persists the repairs left over by failed compensations.
type ReconciliationRecorder interface {
	Record(ctx context.Context, tasks []model.Reconciliation) error
}

type ReconciliationService interface {
	ReconciliationRecorder
	FindTasksToQueue(ctx context.Context, limit int) ([]model.Reconciliation, error)
	MarkTaskAsQueued(ctx context.Context, taskID int64) error
	// Reconcile applies one task at most once, however often it is delivered.
	// Errors wrapped with mq.Temporary are worth retrying; tasks that can never
	// succeed are marked FAILED and return nil.
	Reconcile(ctx context.Context, cmd ReconcileCommand) error
}

type reconciliationService struct {
	reconciliationRepo repository.ReconciliationRepository
	topupRepo          repository.TopupRepository
	transferRepo       repository.TransferRepository
	withdrawRepo       repository.WithdrawRepository
	txManager          repository.TxManager
	ledger             *Ledger
	locker             locker.Locker
	metrics            *metrics.Metrics
	logger             *zap.Logger
}

func NewReconciliationService(reconciliationRepo repository.ReconciliationRepository,
	topupRepo repository.TopupRepository, transferRepo repository.TransferRepository,
	withdrawRepo repository.WithdrawRepository, txManager repository.TxManager, ledger *Ledger,
	taskLocker locker.Locker, metrics *metrics.Metrics, logger *zap.Logger) ReconciliationService {
	return &reconciliationService{
		reconciliationRepo: reconciliationRepo,
		topupRepo:          topupRepo,
		transferRepo:       transferRepo,
		withdrawRepo:       withdrawRepo,
		txManager:          txManager,
		ledger:             ledger,
		locker:             taskLocker,
		metrics:            metrics,
		logger:             logger,
	}
}

func (s *reconciliationService) Record(ctx context.Context, tasks []model.Reconciliation) error {
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		for i := range tasks {
			tasks[i].State = model.ReconcileStatePending
			tasks[i].Published = false
			if err := s.reconciliationRepo.Create(ctx, &tasks[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to record reconciliation tasks", zap.Int("count", len(tasks)), zap.Error(err))
		return err
	}

	for _, task := range tasks {
		s.metrics.RecordReconciliation(model.ReconcileStatePending)
		s.logger.Warn("Reconciliation task recorded",
			zap.Int64("task_id", task.ID),
			zap.String("operation", task.Operation),
			zap.String("step", task.Step),
			zap.String("action", task.Action))
	}

	return nil
}

func (s *reconciliationService) FindTasksToQueue(ctx context.Context, limit int) ([]model.Reconciliation, error) {
	return s.reconciliationRepo.FindUnpublishedPending(ctx, limit)
}

func (s *reconciliationService) MarkTaskAsQueued(ctx context.Context, taskID int64) error {
	return s.reconciliationRepo.MarkPublished(ctx, taskID, time.Now())
}

func taskLockKey(taskID int64) string {
	return fmt.Sprintf("reconciliation:%d", taskID)
}

func (s *reconciliationService) Reconcile(ctx context.Context, cmd ReconcileCommand) error {
	unlock, err := s.locker.Lock(ctx, taskLockKey(cmd.TaskID))
	if err != nil {
		s.logger.Warn("Failed to lock reconciliation task", zap.Int64("task_id", cmd.TaskID), zap.Error(err))
		return mq.Temporary(err)
	}
	defer unlock()

	// The row lock and the state-guarded update keep a second delivery, here or
	// on another worker, from applying the task again.
	var task model.Reconciliation
	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		if task, err = s.reconciliationRepo.GetByIDForUpdate(ctx, cmd.TaskID); err != nil {
			return err
		}
		if task.State != model.ReconcileStatePending {
			return errTaskHandled
		}
		if err := s.apply(ctx, task); err != nil {
			return err
		}
		return s.reconciliationRepo.UpdateState(ctx, task.ID,
			model.ReconcileStatePending, model.ReconcileStateResolved, nil)
	})

	switch {
	case err == nil:
		s.metrics.RecordReconciliation(model.ReconcileStateResolved)
		s.logger.Info("Reconciliation task resolved",
			zap.Int64("task_id", task.ID),
			zap.String("action", task.Action))
		return nil
	case errors.Is(err, repository.ErrReconciliationNotFound):
		s.logger.Warn("Reconciliation task not found", zap.Int64("task_id", cmd.TaskID))
		return nil
	case errors.Is(err, errTaskHandled), errors.Is(err, repository.ErrReconciliationState):
		s.logger.Info("Reconciliation task already handled",
			zap.Int64("task_id", cmd.TaskID),
			zap.String("state", task.State))
		return nil
	case !isPermanent(err):
		s.logger.Warn("Reconciliation task will be retried", zap.Int64("task_id", cmd.TaskID), zap.Error(err))
		return mq.Temporary(err)
	}

	reason := err.Error()
	updateErr := s.reconciliationRepo.UpdateState(ctx, task.ID,
		model.ReconcileStatePending, model.ReconcileStateFailed, &reason)
	if errors.Is(updateErr, repository.ErrReconciliationState) {
		return nil
	}
	if updateErr != nil {
		return mq.Temporary(updateErr)
	}

	s.metrics.RecordReconciliation(model.ReconcileStateFailed)
	s.logger.Error("Reconciliation task failed, manual handling required",
		zap.Int64("task_id", task.ID),
		zap.String("action", task.Action),
		zap.String("record_kind", task.RecordKind),
		zap.Int64("record_id", task.RecordID),
		zap.Int64("user_id", task.UserID),
		zap.Int64("amount", task.Amount),
		zap.Error(err))

	return nil
}

func (s *reconciliationService) apply(ctx context.Context, task model.Reconciliation) error {
	switch task.Action {
	case model.ReconcileActionDeleteRecord:
		return s.deleteRecord(ctx, task.RecordKind, task.RecordID)
	case model.ReconcileActionAdjustBalance:
		unlock, err := s.ledger.Lock(ctx, task.UserID)
		if err != nil {
			return err
		}
		defer unlock()

		_, err = s.ledger.Apply(ctx, BalanceChange{UserID: task.UserID, Delta: task.Amount})
		return err
	default:
		return fmt.Errorf("%w: action %q", ErrUnsupportedTask, task.Action)
	}
}

// deleteRecord treats an already missing record as done.
func (s *reconciliationService) deleteRecord(ctx context.Context, kind string, id int64) error {
	var err error
	switch kind {
	case model.RecordKindTopup:
		if err = s.topupRepo.Delete(ctx, id); errors.Is(err, repository.ErrTopupNotFound) {
			return nil
		}
	case model.RecordKindTransfer:
		if err = s.transferRepo.Delete(ctx, id); errors.Is(err, repository.ErrTransferNotFound) {
			return nil
		}
	case model.RecordKindWithdraw:
		if err = s.withdrawRepo.Delete(ctx, id); errors.Is(err, repository.ErrWithdrawNotFound) {
			return nil
		}
	default:
		return fmt.Errorf("%w: record kind %q", ErrUnsupportedTask, kind)
	}
	return err
}

func isPermanent(err error) bool {
	return errors.Is(err, ErrUnsupportedTask) ||
		HasCode(err, constants.ErrCodeInsufficientBalance) ||
		HasCode(err, constants.ErrCodeSaldoNotFound)
}
