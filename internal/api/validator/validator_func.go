package validator

import (
	"github.com/Behyna/saldo-service/internal/service"
	"github.com/go-playground/validator/v10"
)

const (
	PaymentMethodTag = "payment_method"
)

var valid = map[string]func(fl validator.FieldLevel) bool{
	PaymentMethodTag: ValidatePaymentMethod,
}

func ValidatePaymentMethod(fl validator.FieldLevel) bool {
	return service.IsPaymentMethod(fl.Field().String())
}
