package service

import (
	"errors"
	"fmt"

	"github.com/Behyna/saldo-service/internal/constants"
	"github.com/Behyna/saldo-service/internal/model"
)

var ErrConflict = errors.New("concurrent balance modification")

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	if e.Cause == nil {
		return e.Code
	}
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}

const (
	kindUser  = "user"
	kindSaldo = "saldo"
)

type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

type InsufficientBalanceError struct {
	UserID    int64
	Requested int64
	Available int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("user %d: requested %d, available %d", e.UserID, e.Requested, e.Available)
}

var notFoundCodes = map[string]string{
	kindUser:                 constants.ErrCodeUserNotFound,
	model.RecordKindTopup:    constants.ErrCodeTopupNotFound,
	model.RecordKindTransfer: constants.ErrCodeTransferNotFound,
	model.RecordKindWithdraw: constants.ErrCodeWithdrawNotFound,
	kindSaldo:                constants.ErrCodeSaldoNotFound,
}

func notFound(kind string, id int64) error {
	code, ok := notFoundCodes[kind]
	if !ok {
		code = constants.ErrCodeOperationFailed
	}
	return NewServiceError(code, &NotFoundError{Kind: kind, ID: id})
}

func invalid(format string, args ...any) error {
	return NewServiceError(constants.ErrCodeValidationFailed, &ValidationError{Reason: fmt.Sprintf(format, args...)})
}

func insufficient(userID, requested, available int64) error {
	return NewServiceError(constants.ErrCodeInsufficientBalance,
		&InsufficientBalanceError{UserID: userID, Requested: requested, Available: available})
}

func balanceUpdateFailed(cause error) error {
	return NewServiceError(constants.ErrCodeBalanceUpdateFailed, cause)
}

func operationFailed(cause error) error {
	return NewServiceError(constants.ErrCodeOperationFailed, cause)
}

// HasCode reports whether err is a service Error carrying code.
func HasCode(err error, code string) bool {
	var svcErr Error
	return errors.As(err, &svcErr) && svcErr.Code == code
}
