package v1

import (
	"github.com/Behyna/saldo-service/internal/constants"
	"github.com/Behyna/saldo-service/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (h *Handler) CreateTopup(c *fiber.Ctx) error {
	var request CreateTopupRequest
	if err := h.XValidator.Validator(c, &request, constants.MessageErrorFormat); err != nil {
		h.logger.Warn("Invalid topup request", zap.Error(err), zap.ByteString("body", c.Body()))
		return err
	}

	topup, err := h.topupService.CreateTopup(c.UserContext(), service.CreateTopupCommand{
		UserID:  request.UserID,
		TopupNo: request.TopupNo,
		Amount:  request.Amount,
		Method:  request.Method,
	})
	if err != nil {
		return err
	}

	return ok(c, constants.TopupCreated, topup)
}

func (h *Handler) UpdateTopup(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var request UpdateTopupRequest
	if err := h.XValidator.Validator(c, &request, constants.MessageErrorFormat); err != nil {
		h.logger.Warn("Invalid topup update request", zap.Error(err), zap.Int64("topup_id", id))
		return err
	}

	topup, err := h.topupService.UpdateTopup(c.UserContext(), service.UpdateTopupCommand{
		TopupID: id,
		Amount:  request.Amount,
		Method:  request.Method,
	})
	if err != nil {
		return err
	}

	return ok(c, constants.TopupUpdated, topup)
}

func (h *Handler) DeleteTopup(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.topupService.DeleteTopup(c.UserContext(), id); err != nil {
		return err
	}

	return ok(c, constants.TopupDeleted, nil)
}

func (h *Handler) GetTopup(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	topup, err := h.topupService.GetTopup(c.UserContext(), id)
	if err != nil {
		return err
	}

	return ok(c, constants.TopupRetrieved, topup)
}

func (h *Handler) GetTopups(c *fiber.Ctx) error {
	topups, err := h.topupService.GetTopups(c.UserContext())
	if err != nil {
		return err
	}

	return ok(c, constants.TopupsRetrieved, topups)
}

func (h *Handler) GetUserTopups(c *fiber.Ctx) error {
	userID, err := paramID(c, "user_id")
	if err != nil {
		return err
	}

	topups, err := h.topupService.GetUserTopups(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return ok(c, constants.TopupsRetrieved, topups)
}
