package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Behyna/saldo-service/internal/constants"
	"github.com/Behyna/saldo-service/internal/model"
	"github.com/Behyna/saldo-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferService_CreateTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("moves funds and opens the receiver saldo", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1, 1000)
		require.False(t, f.hasSaldo(2))

		transfer, err := f.transfer.CreateTransfer(ctx, service.CreateTransferCommand{FromUserID: 1, ToUserID: 2, Amount: 500})

		require.NoError(t, err)
		assert.NotZero(t, transfer.ID)
		assert.Equal(t, int64(500), f.balance(t, 1))
		assert.Equal(t, int64(500), f.balance(t, 2))
	})

	t.Run("conserves the total across transfers", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1, 1000)
		f.fund(t, 2, 300)

		_, err := f.transfer.CreateTransfer(ctx, service.CreateTransferCommand{FromUserID: 1, ToUserID: 2, Amount: 250})
		require.NoError(t, err)
		_, err = f.transfer.CreateTransfer(ctx, service.CreateTransferCommand{FromUserID: 2, ToUserID: 3, Amount: 400})
		require.NoError(t, err)

		assert.Equal(t, int64(1300), f.balance(t, 1)+f.balance(t, 2)+f.balance(t, 3))
		assert.Equal(t, int64(750), f.balance(t, 1))
		assert.Equal(t, int64(150), f.balance(t, 2))
		assert.Equal(t, int64(400), f.balance(t, 3))
	})

	t.Run("rejects more than the sender holds without writing", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1, 100)

		_, err := f.transfer.CreateTransfer(ctx, service.CreateTransferCommand{FromUserID: 1, ToUserID: 2, Amount: 200})

		var insufficientErr *service.InsufficientBalanceError
		require.ErrorAs(t, err, &insufficientErr)
		assert.Equal(t, int64(200), insufficientErr.Requested)
		assert.Equal(t, int64(100), f.balance(t, 1))
		assert.False(t, f.hasSaldo(2))

		transfers, _ := f.transfer.GetTransfers(ctx)
		assert.Empty(t, transfers)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1, 1000)

		cases := []service.CreateTransferCommand{
			{FromUserID: 1, ToUserID: 1, Amount: 10},
			{FromUserID: 1, ToUserID: 2, Amount: 0},
			{FromUserID: 1, ToUserID: 2, Amount: 50000},
		}
		for _, cmd := range cases {
			_, err := f.transfer.CreateTransfer(ctx, cmd)
			assert.True(t, service.HasCode(err, constants.ErrCodeValidationFailed), "%+v", cmd)
		}
	})

	t.Run("requires both users", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1, 1000)

		_, err := f.transfer.CreateTransfer(ctx, service.CreateTransferCommand{FromUserID: 1, ToUserID: 99, Amount: 10})

		assert.True(t, service.HasCode(err, constants.ErrCodeUserNotFound))
	})

	t.Run("requires a sender saldo", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.transfer.CreateTransfer(ctx, service.CreateTransferCommand{FromUserID: 1, ToUserID: 2, Amount: 10})

		assert.True(t, service.HasCode(err, constants.ErrCodeSaldoNotFound))
	})

	t.Run("re-credits the sender when the credit fails", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1, 1000)
		f.fund(t, 2, 50)
		f.saldos.updateErr = failFor(2, errors.New("db down"))

		_, err := f.transfer.CreateTransfer(ctx, service.CreateTransferCommand{FromUserID: 1, ToUserID: 2, Amount: 500})

		assert.True(t, service.HasCode(err, constants.ErrCodeBalanceUpdateFailed))
		f.saldos.updateErr = nil
		assert.Equal(t, int64(1000), f.balance(t, 1))
		assert.Equal(t, int64(50), f.balance(t, 2))

		transfers, _ := f.transfer.GetTransfers(ctx)
		assert.Empty(t, transfers)
	})

	t.Run("leaves a task per failed compensation", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1, 1000)
		f.fund(t, 2, 50)
		calls := 0
		f.saldos.updateErr = func(saldo model.Saldo) error {
			calls++
			// debit succeeds, the credit and the sender re-credit fail.
			if calls > 1 {
				return errors.New("db down")
			}
			return nil
		}
		f.transfers.deleteErr = errors.New("db down")

		transfer, err := f.transfer.CreateTransfer(ctx, service.CreateTransferCommand{FromUserID: 1, ToUserID: 2, Amount: 500})

		assert.Zero(t, transfer.ID)
		assert.True(t, service.HasCode(err, constants.ErrCodeCompensationFailed))

		tasks, err := f.reconciliation.FindTasksToQueue(ctx, 10)
		require.NoError(t, err)
		require.Len(t, tasks, 2)

		byStep := map[string]model.Reconciliation{}
		for _, task := range tasks {
			byStep[task.Step] = task
		}
		assert.Equal(t, model.ReconcileActionAdjustBalance, byStep["debit_sender"].Action)
		assert.Equal(t, int64(1), byStep["debit_sender"].UserID)
		assert.Equal(t, int64(500), byStep["debit_sender"].Amount)
		assert.NotZero(t, byStep["debit_sender"].RecordID)
		assert.Equal(t, model.ReconcileActionDeleteRecord, byStep["create_transfer_record"].Action)
	})
}

func TestTransferService_UpdateTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("applies symmetric deltas", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1, 1000)
		transfer, err := f.transfer.CreateTransfer(ctx, service.CreateTransferCommand{FromUserID: 1, ToUserID: 2, Amount: 500})
		require.NoError(t, err)

		updated, err := f.transfer.UpdateTransfer(ctx, service.UpdateTransferCommand{TransferID: transfer.ID, Amount: 800})

		require.NoError(t, err)
		assert.Equal(t, int64(800), updated.Amount)
		assert.Equal(t, int64(200), f.balance(t, 1))
		assert.Equal(t, int64(800), f.balance(t, 2))
	})

	t.Run("rejects an increase the sender cannot cover", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1, 1000)
		transfer, err := f.transfer.CreateTransfer(ctx, service.CreateTransferCommand{FromUserID: 1, ToUserID: 2, Amount: 500})
		require.NoError(t, err)

		_, err = f.transfer.UpdateTransfer(ctx, service.UpdateTransferCommand{TransferID: transfer.ID, Amount: 1200})

		assert.True(t, service.HasCode(err, constants.ErrCodeInsufficientBalance))
		assert.Equal(t, int64(500), f.balance(t, 1))
		assert.Equal(t, int64(500), f.balance(t, 2))
	})

	t.Run("reverts the sender when the receiver write fails", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1, 1000)
		transfer, err := f.transfer.CreateTransfer(ctx, service.CreateTransferCommand{FromUserID: 1, ToUserID: 2, Amount: 500})
		require.NoError(t, err)
		f.saldos.updateErr = failFor(2, errors.New("db down"))

		_, err = f.transfer.UpdateTransfer(ctx, service.UpdateTransferCommand{TransferID: transfer.ID, Amount: 100})

		require.Error(t, err)
		f.saldos.updateErr = nil
		assert.Equal(t, int64(500), f.balance(t, 1))
		assert.Equal(t, int64(500), f.balance(t, 2))

		stored, err := f.transfer.GetTransfer(ctx, transfer.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(500), stored.Amount)
	})

	t.Run("reverts both parties when the record update fails", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1, 1000)
		transfer, err := f.transfer.CreateTransfer(ctx, service.CreateTransferCommand{FromUserID: 1, ToUserID: 2, Amount: 500})
		require.NoError(t, err)
		f.transfers.updateErr = errors.New("db down")

		_, err = f.transfer.UpdateTransfer(ctx, service.UpdateTransferCommand{TransferID: transfer.ID, Amount: 700})

		require.Error(t, err)
		assert.Equal(t, int64(500), f.balance(t, 1))
		assert.Equal(t, int64(500), f.balance(t, 2))
	})
}

func TestTransferService_DeleteTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("reverses both legs", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1, 1000)
		transfer, err := f.transfer.CreateTransfer(ctx, service.CreateTransferCommand{FromUserID: 1, ToUserID: 2, Amount: 300})
		require.NoError(t, err)

		require.NoError(t, f.transfer.DeleteTransfer(ctx, transfer.ID))

		assert.Equal(t, int64(1000), f.balance(t, 1))
		assert.Equal(t, int64(0), f.balance(t, 2))
		_, err = f.transfer.GetTransfer(ctx, transfer.ID)
		assert.True(t, service.HasCode(err, constants.ErrCodeTransferNotFound))
	})

	t.Run("rejects when the receiver spent the funds", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1, 1000)
		transfer, err := f.transfer.CreateTransfer(ctx, service.CreateTransferCommand{FromUserID: 1, ToUserID: 2, Amount: 300})
		require.NoError(t, err)
		_, err = f.withdraw.CreateWithdraw(ctx, service.CreateWithdrawCommand{UserID: 2, Amount: 200})
		require.NoError(t, err)

		err = f.transfer.DeleteTransfer(ctx, transfer.ID)

		assert.True(t, service.HasCode(err, constants.ErrCodeInsufficientBalance))
		assert.Equal(t, int64(700), f.balance(t, 1))
		assert.Equal(t, int64(100), f.balance(t, 2))
	})

	t.Run("lists transfers by either party", func(t *testing.T) {
		f := newFixture(t)
		f.fund(t, 1, 1000)
		_, err := f.transfer.CreateTransfer(ctx, service.CreateTransferCommand{FromUserID: 1, ToUserID: 2, Amount: 100})
		require.NoError(t, err)
		_, err = f.transfer.CreateTransfer(ctx, service.CreateTransferCommand{FromUserID: 2, ToUserID: 3, Amount: 50})
		require.NoError(t, err)

		forTwo, err := f.transfer.GetUserTransfers(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, forTwo, 2)

		forThree, err := f.transfer.GetUserTransfers(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, forThree, 1)
	})
}
