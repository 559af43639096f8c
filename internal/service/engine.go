package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Behyna/saldo-service/internal/config"
	"github.com/Behyna/saldo-service/internal/constants"
	"github.com/Behyna/saldo-service/internal/metrics"
	"github.com/Behyna/saldo-service/internal/model"
	"github.com/Behyna/saldo-service/internal/saga"
	"go.uber.org/zap"
)

const outcomeRejected = "rejected"

// engine holds what every balance-mutating service shares: the ledger, the
// user directory, limits, and the saga plumbing that turns a failed
// compensation into reconciliation tasks.
type engine struct {
	ledger         *Ledger
	users          UserDirectory
	reconciliation ReconciliationRecorder
	limits         config.Engine
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

func newEngine(ledger *Ledger, users UserDirectory, reconciliation ReconciliationRecorder,
	cfg *config.Config, metrics *metrics.Metrics, logger *zap.Logger) engine {
	return engine{
		ledger:         ledger,
		users:          users,
		reconciliation: reconciliation,
		limits:         cfg.Engine,
		metrics:        metrics,
		logger:         logger,
	}
}

// operation is one saga plus the reconciliation task each compensable step
// leaves behind if its compensation fails.
type operation struct {
	name    string
	start   time.Time
	saga    *saga.Saga
	repairs map[string]func() model.Reconciliation
}

func (e *engine) begin(ctx context.Context, name string) (context.Context, context.CancelFunc, *operation) {
	cancel := context.CancelFunc(func() {})
	if e.limits.OperationTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, e.limits.OperationTimeout)
	}

	op := &operation{
		name:    name,
		start:   time.Now(),
		saga:    saga.New(name, e.logger).WithCompensationTimeout(e.limits.CompensationTimeout),
		repairs: make(map[string]func() model.Reconciliation),
	}

	return ctx, cancel, op
}

func (o *operation) step(name string, action, compensate func(ctx context.Context) error,
	repair func() model.Reconciliation) {
	o.saga.AddStep(saga.Step{Name: name, Action: action, Compensate: compensate})
	if repair != nil {
		o.repairs[name] = repair
	}
}

// reject records a precondition failure. Nothing has been written yet.
func (e *engine) reject(op *operation, err error) error {
	e.metrics.RecordOperation(op.name, outcomeRejected, time.Since(op.start))
	e.logger.Warn("Operation rejected",
		zap.String("operation", op.name),
		zap.Error(err))
	return err
}

func (e *engine) execute(ctx context.Context, op *operation) error {
	err := op.saga.Execute(ctx)
	state := op.saga.State()
	e.metrics.RecordOperation(op.name, strings.ToLower(string(state)), time.Since(op.start))

	if err == nil {
		return nil
	}

	var compErr *saga.CompensationError
	if errors.As(err, &compErr) {
		e.metrics.RecordCompensation(op.name, "failed")
		e.recordRepairs(ctx, op, compErr)
		return NewServiceError(constants.ErrCodeCompensationFailed, compErr)
	}

	var stepErr *saga.StepError
	if errors.As(err, &stepErr) && len(stepErr.Compensated) > 0 {
		e.metrics.RecordCompensation(op.name, "succeeded")
	}

	var svcErr Error
	if errors.As(err, &svcErr) {
		return svcErr
	}

	return operationFailed(err)
}

func (e *engine) recordRepairs(ctx context.Context, op *operation, compErr *saga.CompensationError) {
	tasks := make([]model.Reconciliation, 0, len(compErr.Failures))
	for _, failure := range compErr.Failures {
		repair, ok := op.repairs[failure.Step]
		if !ok {
			e.logger.Error("No reconciliation known for failed compensation",
				zap.String("operation", op.name),
				zap.String("step", failure.Step),
				zap.Error(failure.Err))
			continue
		}

		task := repair()
		task.Operation = op.name
		task.Step = failure.Step
		tasks = append(tasks, task)
	}

	if len(tasks) == 0 {
		return
	}

	if err := e.reconciliation.Record(context.WithoutCancel(ctx), tasks); err != nil {
		for _, task := range tasks {
			e.logger.Error("Manual reconciliation required",
				zap.String("operation", task.Operation),
				zap.String("step", task.Step),
				zap.String("action", task.Action),
				zap.String("record_kind", task.RecordKind),
				zap.Int64("record_id", task.RecordID),
				zap.Int64("user_id", task.UserID),
				zap.Int64("amount", task.Amount),
				zap.Error(err))
		}
	}
}

func (e *engine) requireUser(ctx context.Context, userID int64) error {
	exists, err := e.users.Exists(ctx, userID)
	if err != nil {
		e.logger.Error("User directory lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		return NewServiceError(constants.ErrCodeUserDirectoryFailure, err)
	}

	if !exists {
		return notFound(kindUser, userID)
	}

	return nil
}

func deleteRecord(kind string, id *int64) func() model.Reconciliation {
	return func() model.Reconciliation {
		return model.Reconciliation{
			Action:     model.ReconcileActionDeleteRecord,
			RecordKind: kind,
			RecordID:   *id,
		}
	}
}

func adjustBalance(kind string, recordID, userID, delta int64) func() model.Reconciliation {
	return func() model.Reconciliation {
		return model.Reconciliation{
			Action:     model.ReconcileActionAdjustBalance,
			RecordKind: kind,
			RecordID:   recordID,
			UserID:     userID,
			Amount:     delta,
		}
	}
}

// apply returns a step action adding delta to userID's balance. A zero delta
// without withdrawal metadata is a no-op.
func (e *engine) apply(userID, delta int64, withdrawal *WithdrawalMeta) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if delta == 0 && withdrawal == nil {
			return nil
		}

		_, err := e.ledger.Apply(ctx, BalanceChange{UserID: userID, Delta: delta, Withdrawal: withdrawal})
		return err
	}
}
