package v1

import (
	"github.com/Behyna/saldo-service/internal/constants"
	"github.com/Behyna/saldo-service/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (h *Handler) CreateTransfer(c *fiber.Ctx) error {
	var request CreateTransferRequest
	if err := h.XValidator.Validator(c, &request, constants.MessageErrorFormat); err != nil {
		h.logger.Warn("Invalid transfer request", zap.Error(err), zap.ByteString("body", c.Body()))
		return err
	}

	transfer, err := h.transferService.CreateTransfer(c.UserContext(), service.CreateTransferCommand{
		FromUserID: request.FromUserID,
		ToUserID:   request.ToUserID,
		Amount:     request.Amount,
	})
	if err != nil {
		return err
	}

	return ok(c, constants.TransferCreated, transfer)
}

func (h *Handler) UpdateTransfer(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var request UpdateTransferRequest
	if err := h.XValidator.Validator(c, &request, constants.MessageErrorFormat); err != nil {
		h.logger.Warn("Invalid transfer update request", zap.Error(err), zap.Int64("transfer_id", id))
		return err
	}

	transfer, err := h.transferService.UpdateTransfer(c.UserContext(), service.UpdateTransferCommand{
		TransferID: id,
		Amount:     request.Amount,
	})
	if err != nil {
		return err
	}

	return ok(c, constants.TransferUpdated, transfer)
}

func (h *Handler) DeleteTransfer(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.transferService.DeleteTransfer(c.UserContext(), id); err != nil {
		return err
	}

	return ok(c, constants.TransferDeleted, nil)
}

func (h *Handler) GetTransfer(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	transfer, err := h.transferService.GetTransfer(c.UserContext(), id)
	if err != nil {
		return err
	}

	return ok(c, constants.TransferRetrieved, transfer)
}

func (h *Handler) GetTransfers(c *fiber.Ctx) error {
	transfers, err := h.transferService.GetTransfers(c.UserContext())
	if err != nil {
		return err
	}

	return ok(c, constants.TransfersRetrieved, transfers)
}

func (h *Handler) GetUserTransfers(c *fiber.Ctx) error {
	userID, err := paramID(c, "user_id")
	if err != nil {
		return err
	}

	transfers, err := h.transferService.GetUserTransfers(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return ok(c, constants.TransfersRetrieved, transfers)
}
