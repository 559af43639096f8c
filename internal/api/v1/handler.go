package v1

import (
	"fmt"

	"github.com/Behyna/saldo-service/internal/api/contract"
	"github.com/Behyna/saldo-service/internal/api/validator"
	"github.com/Behyna/saldo-service/internal/constants"
	"github.com/Behyna/saldo-service/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	logger          *zap.Logger
	saldoService    service.SaldoService
	topupService    service.TopupService
	transferService service.TransferService
	withdrawService service.WithdrawService
	XValidator      validator.IXValidator
}

func NewHandler(logger *zap.Logger, saldoService service.SaldoService, topupService service.TopupService,
	transferService service.TransferService, withdrawService service.WithdrawService,
	XValidator validator.IXValidator) *Handler {
	return &Handler{
		logger:          logger,
		saldoService:    saldoService,
		topupService:    topupService,
		transferService: transferService,
		withdrawService: withdrawService,
		XValidator:      XValidator,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, service.NewServiceError(constants.ErrCodeValidationFailed,
			&service.ValidationError{Reason: fmt.Sprintf(constants.MessageErrorFormat, name)})
	}
	return int64(id), nil
}

func ok(c *fiber.Ctx, message string, result any) error {
	return c.Status(fiber.StatusOK).JSON(contract.Success(message, result))
}
