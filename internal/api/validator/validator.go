package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Behyna/saldo-service/internal/constants"
	"github.com/Behyna/saldo-service/internal/metrics"
	"github.com/Behyna/saldo-service/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	sep = " and "
)

type Error struct {
	Error       bool
	FailedField string
	Tag         string
	Value       interface{}
}

type IXValidator interface {
	// Validator parses the request body into data and validates it. The
	// returned error is a service error ready for the error handler.
	Validator(c *fiber.Ctx, data any, message string) error
	Validate(data interface{}) []Error
}

type XValidator struct {
	validator *validator.Validate
	metrics   *metrics.Metrics
}

func NewXValidator(validate *validator.Validate, metrics *metrics.Metrics) (IXValidator, error) {
	for key, function := range valid {
		if err := validate.RegisterValidation(key, function); err != nil {
			return nil, fmt.Errorf("register %s validation: %w", key, err)
		}
	}

	return &XValidator{
		validator: validate,
		metrics:   metrics,
	}, nil
}

func NewValidate() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func (x XValidator) Validator(c *fiber.Ctx, data any, message string) error {
	start := time.Now()

	if err := c.BodyParser(data); err != nil {
		return service.NewServiceError(constants.ErrCodeInvalidRequestBody, err)
	}

	errs := x.Validate(data)
	if len(errs) == 0 || !errs[0].Error {
		x.metrics.RecordValidation("validation_success", time.Since(start))
		return nil
	}

	errMsgs := make([]string, 0, len(errs))
	for _, err := range errs {
		errMsgs = append(errMsgs, fmt.Sprintf(message, err.FailedField))
		x.metrics.RecordValidationError(err.FailedField, err.Tag)
	}
	x.metrics.RecordValidation("validation_error", time.Since(start))

	return service.NewServiceError(constants.ErrCodeValidationFailed,
		&service.ValidationError{Reason: strings.Join(errMsgs, sep)})
}

func (x XValidator) Validate(data interface{}) []Error {
	var validationErrors []Error

	errs := x.validator.Struct(data)
	if errs == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(errs, &fieldErrs) {
		return []Error{{Error: true, FailedField: "request", Tag: "struct"}}
	}

	for _, err := range fieldErrs {
		var elem Error
		elem.FailedField = err.Field()
		elem.Tag = err.Tag()
		elem.Value = err.Value()
		elem.Error = true
		validationErrors = append(validationErrors, elem)
	}
	return validationErrors
}
