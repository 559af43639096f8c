package saga_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Behyna/saldo-service/internal/saga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorder struct {
	calls []string
}

func (r *recorder) step(name string, actionErr, compErr error) saga.Step {
	return saga.Step{
		Name: name,
		Action: func(ctx context.Context) error {
			r.calls = append(r.calls, "do:"+name)
			return actionErr
		},
		Compensate: func(ctx context.Context) error {
			r.calls = append(r.calls, "undo:"+name)
			return compErr
		},
	}
}

func TestSaga_Execute(t *testing.T) {
	logger := zap.NewNop()
	errBoom := errors.New("boom")

	t.Run("runs every step in order and commits", func(t *testing.T) {
		rec := &recorder{}
		s := saga.New("test", logger).
			AddStep(rec.step("a", nil, nil)).
			AddStep(rec.step("b", nil, nil)).
			AddStep(rec.step("c", nil, nil))

		err := s.Execute(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"do:a", "do:b", "do:c"}, rec.calls)
		assert.Equal(t, saga.StateCommitted, s.State())
		assert.Equal(t, []string{"a", "b", "c"}, s.Completed())
	})

	t.Run("compensates completed steps in reverse order", func(t *testing.T) {
		rec := &recorder{}
		s := saga.New("test", logger).
			AddStep(rec.step("a", nil, nil)).
			AddStep(rec.step("b", nil, nil)).
			AddStep(rec.step("c", errBoom, nil))

		err := s.Execute(context.Background())

		require.Error(t, err)
		var stepErr *saga.StepError
		require.True(t, errors.As(err, &stepErr))
		assert.Equal(t, "c", stepErr.Step)
		assert.Equal(t, []string{"b", "a"}, stepErr.Compensated)
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, []string{"do:a", "do:b", "do:c", "undo:b", "undo:a"}, rec.calls)
		assert.Equal(t, saga.StateRolledBack, s.State())
		assert.Empty(t, s.Completed())
	})

	t.Run("first step failure compensates nothing", func(t *testing.T) {
		rec := &recorder{}
		s := saga.New("test", logger).
			AddStep(rec.step("a", errBoom, nil)).
			AddStep(rec.step("b", nil, nil))

		err := s.Execute(context.Background())

		var stepErr *saga.StepError
		require.True(t, errors.As(err, &stepErr))
		assert.Empty(t, stepErr.Compensated)
		assert.Equal(t, []string{"do:a"}, rec.calls)
		assert.Equal(t, saga.StateRolledBack, s.State())
	})

	t.Run("skips steps without a compensation", func(t *testing.T) {
		rec := &recorder{}
		s := saga.New("test", logger).
			AddStep(saga.Step{Name: "read", Action: func(ctx context.Context) error { return nil }}).
			AddStep(rec.step("b", errBoom, nil))

		err := s.Execute(context.Background())

		var stepErr *saga.StepError
		require.True(t, errors.As(err, &stepErr))
		assert.Empty(t, stepErr.Compensated)
		assert.Equal(t, []string{"do:b"}, rec.calls)
	})

	t.Run("failed compensation is reported and the rest still run", func(t *testing.T) {
		rec := &recorder{}
		errUndo := errors.New("undo failed")
		s := saga.New("test", logger).
			AddStep(rec.step("a", nil, nil)).
			AddStep(rec.step("b", nil, errUndo)).
			AddStep(rec.step("c", errBoom, nil))

		err := s.Execute(context.Background())

		require.Error(t, err)
		var compErr *saga.CompensationError
		require.True(t, errors.As(err, &compErr))
		assert.Equal(t, "c", compErr.Step)
		assert.ErrorIs(t, compErr.Cause, errBoom)
		require.Len(t, compErr.Failures, 1)
		assert.Equal(t, "b", compErr.Failures[0].Step)
		assert.ErrorIs(t, compErr.Failures[0].Err, errUndo)
		assert.Equal(t, []string{"do:a", "do:b", "do:c", "undo:b", "undo:a"}, rec.calls)
		assert.Equal(t, saga.StateCompensationFailed, s.State())
		assert.Contains(t, err.Error(), "undo failed")
	})

	t.Run("cancellation before a step runs the compensation path", func(t *testing.T) {
		rec := &recorder{}
		ctx, cancel := context.WithCancel(context.Background())

		var compCtxErr error
		s := saga.New("test", logger).
			AddStep(saga.Step{
				Name:   "record",
				Action: func(ctx context.Context) error { rec.calls = append(rec.calls, "do:record"); cancel(); return nil },
				Compensate: func(ctx context.Context) error {
					compCtxErr = ctx.Err()
					rec.calls = append(rec.calls, "undo:record")
					return nil
				},
			}).
			AddStep(rec.step("balance", nil, nil))

		err := s.Execute(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, []string{"do:record", "undo:record"}, rec.calls)
		assert.NoError(t, compCtxErr)
		assert.Equal(t, saga.StateRolledBack, s.State())
	})
}
