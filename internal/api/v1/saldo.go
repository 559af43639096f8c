package v1

import (
	"github.com/Behyna/saldo-service/internal/constants"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetSaldos(c *fiber.Ctx) error {
	saldos, err := h.saldoService.GetSaldos(c.UserContext())
	if err != nil {
		return err
	}

	return ok(c, constants.SaldosRetrieved, saldos)
}

func (h *Handler) GetSaldo(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	saldo, err := h.saldoService.GetSaldo(c.UserContext(), id)
	if err != nil {
		return err
	}

	return ok(c, constants.SaldoRetrieved, saldo)
}

func (h *Handler) GetUserSaldo(c *fiber.Ctx) error {
	userID, err := paramID(c, "user_id")
	if err != nil {
		return err
	}

	saldo, err := h.saldoService.GetSaldoByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return ok(c, constants.SaldoRetrieved, saldo)
}
