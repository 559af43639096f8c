// Package saga runs an ordered list of steps and, when one fails, undoes the
// steps that already completed in reverse order.
package saga

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type State string

const (
	StateInitiated          State = "INITIATED"
	StateRunning            State = "RUNNING"
	StateCommitted          State = "COMMITTED"
	StateRolledBack         State = "ROLLED_BACK"
	StateCompensationFailed State = "COMPENSATION_FAILED"
)

type Step struct {
	Name   string
	Action func(ctx context.Context) error
	// Compensate may be nil for steps that have nothing to undo.
	Compensate func(ctx context.Context) error
}

type Saga struct {
	name                string
	steps               []Step
	logger              *zap.Logger
	compensationTimeout time.Duration
	state               State
	completed           []string
}

func New(name string, logger *zap.Logger) *Saga {
	return &Saga{name: name, logger: logger, state: StateInitiated}
}

// WithCompensationTimeout bounds the total time spent compensating.
// Zero means no bound beyond the caller's own deadlines.
func (s *Saga) WithCompensationTimeout(d time.Duration) *Saga {
	s.compensationTimeout = d
	return s
}

func (s *Saga) AddStep(step Step) *Saga {
	s.steps = append(s.steps, step)
	return s
}

func (s *Saga) State() State {
	return s.state
}

// Completed lists the names of steps whose action succeeded and was not undone.
func (s *Saga) Completed() []string {
	return append([]string(nil), s.completed...)
}

// Execute runs every step in order. A cancelled ctx is treated as a failure of
// the next step. Compensations run on a context detached from ctx cancellation.
func (s *Saga) Execute(ctx context.Context) error {
	s.state = StateRunning
	s.completed = s.completed[:0]

	for i, step := range s.steps {
		err := ctx.Err()
		if err == nil {
			err = step.Action(ctx)
		}

		if err == nil {
			s.completed = append(s.completed, step.Name)
			continue
		}

		s.logger.Warn("Saga step failed",
			zap.String("saga", s.name),
			zap.String("step", step.Name),
			zap.Error(err))

		compensated, failures := s.compensate(ctx, i)
		if len(failures) > 0 {
			s.state = StateCompensationFailed
			return &CompensationError{Saga: s.name, Step: step.Name, Cause: err, Failures: failures}
		}

		s.state = StateRolledBack
		return &StepError{Saga: s.name, Step: step.Name, Cause: err, Compensated: compensated}
	}

	s.state = StateCommitted
	return nil
}

// compensate undoes steps before failedAt, newest first. It returns the steps
// whose compensation ran and the ones whose compensation failed.
func (s *Saga) compensate(ctx context.Context, failedAt int) ([]string, []CompensationFailure) {
	compCtx := context.WithoutCancel(ctx)
	if s.compensationTimeout > 0 {
		var cancel context.CancelFunc
		compCtx, cancel = context.WithTimeout(compCtx, s.compensationTimeout)
		defer cancel()
	}

	var (
		compensated []string
		failures    []CompensationFailure
	)
	for i := failedAt - 1; i >= 0; i-- {
		step := s.steps[i]
		s.completed = s.completed[:i]
		if step.Compensate == nil {
			continue
		}

		if err := step.Compensate(compCtx); err != nil {
			s.logger.Error("Saga compensation failed",
				zap.String("saga", s.name),
				zap.String("step", step.Name),
				zap.Error(err))
			failures = append(failures, CompensationFailure{Step: step.Name, Err: err})
			continue
		}

		compensated = append(compensated, step.Name)
		s.logger.Info("Saga step compensated",
			zap.String("saga", s.name),
			zap.String("step", step.Name))
	}

	return compensated, failures
}

// StepError reports a failed step whose predecessors were all compensated.
type StepError struct {
	Saga  string
	Step  string
	Cause error
	// Compensated lists the steps undone, newest first. Empty when the first
	// step with a compensation never completed.
	Compensated []string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("saga %s: step %s failed: %v", e.Saga, e.Step, e.Cause)
}

func (e *StepError) Unwrap() error {
	return e.Cause
}

type CompensationFailure struct {
	Step string
	Err  error
}

// CompensationError reports a failed step where at least one compensation
// also failed, leaving partial state behind.
type CompensationError struct {
	Saga     string
	Step     string
	Cause    error
	Failures []CompensationFailure
}

func (e *CompensationError) Error() string {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, fmt.Errorf("%s: %w", f.Step, f.Err))
	}

	return fmt.Sprintf("saga %s: step %s failed: %v; compensation failed: %v",
		e.Saga, e.Step, e.Cause, errors.Join(errs...))
}

func (e *CompensationError) Unwrap() error {
	return e.Cause
}
