package v1

import (
	"github.com/Behyna/saldo-service/internal/constants"
	"github.com/Behyna/saldo-service/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (h *Handler) CreateWithdraw(c *fiber.Ctx) error {
	var request CreateWithdrawRequest
	if err := h.XValidator.Validator(c, &request, constants.MessageErrorFormat); err != nil {
		h.logger.Warn("Invalid withdraw request", zap.Error(err), zap.ByteString("body", c.Body()))
		return err
	}

	withdraw, err := h.withdrawService.CreateWithdraw(c.UserContext(), service.CreateWithdrawCommand{
		UserID: request.UserID,
		Amount: request.Amount,
	})
	if err != nil {
		return err
	}

	return ok(c, constants.WithdrawCreated, withdraw)
}

func (h *Handler) UpdateWithdraw(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var request UpdateWithdrawRequest
	if err := h.XValidator.Validator(c, &request, constants.MessageErrorFormat); err != nil {
		h.logger.Warn("Invalid withdraw update request", zap.Error(err), zap.Int64("withdraw_id", id))
		return err
	}

	withdraw, err := h.withdrawService.UpdateWithdraw(c.UserContext(), service.UpdateWithdrawCommand{
		WithdrawID: id,
		Amount:     request.Amount,
	})
	if err != nil {
		return err
	}

	return ok(c, constants.WithdrawUpdated, withdraw)
}

func (h *Handler) DeleteWithdraw(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.withdrawService.DeleteWithdraw(c.UserContext(), id); err != nil {
		return err
	}

	return ok(c, constants.WithdrawDeleted, nil)
}

func (h *Handler) GetWithdraw(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	withdraw, err := h.withdrawService.GetWithdraw(c.UserContext(), id)
	if err != nil {
		return err
	}

	return ok(c, constants.WithdrawRetrieved, withdraw)
}

func (h *Handler) GetWithdraws(c *fiber.Ctx) error {
	withdraws, err := h.withdrawService.GetWithdraws(c.UserContext())
	if err != nil {
		return err
	}

	return ok(c, constants.WithdrawsRetrieved, withdraws)
}

func (h *Handler) GetUserWithdraws(c *fiber.Ctx) error {
	userID, err := paramID(c, "user_id")
	if err != nil {
		return err
	}

	withdraws, err := h.withdrawService.GetUserWithdraws(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return ok(c, constants.WithdrawsRetrieved, withdraws)
}
