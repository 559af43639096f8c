package errors

import (
	"errors"

	"github.com/Behyna/saldo-service/internal/api/contract"
	"github.com/Behyna/saldo-service/internal/constants"
	"github.com/Behyna/saldo-service/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr, logger)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusNotFound {
			return c.Status(fiber.StatusNotFound).JSON(contract.Failure(
				constants.ErrCodeRouteNotFound,
				constants.GetErrorMessage(constants.ErrCodeRouteNotFound)))
		}

		logger.Error("Unhandled error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(contract.Failure(
			constants.ErrCodeInternalError,
			constants.GetErrorMessage(constants.ErrCodeInternalError)))
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error, logger *zap.Logger) error {
	status := constants.GetHTTPStatus(err.Code)
	message := constants.GetErrorMessage(err.Code)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		message = validationErr.Reason
	}

	if status >= fiber.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("code", err.Code),
			zap.Error(err.Cause))
	}

	return c.Status(status).JSON(contract.Failure(err.Code, message))
}
