package constants

import "net/http"

const (
	ErrCodeUserNotFound         = "USER_NOT_FOUND"
	ErrCodeSaldoNotFound        = "SALDO_NOT_FOUND"
	ErrCodeTopupNotFound        = "TOPUP_NOT_FOUND"
	ErrCodeTransferNotFound     = "TRANSFER_NOT_FOUND"
	ErrCodeWithdrawNotFound     = "WITHDRAW_NOT_FOUND"
	ErrCodeValidationFailed     = "VALIDATION_FAILED"
	ErrCodeInvalidRequestBody   = "INVALID_REQUEST_BODY"
	ErrCodeInsufficientBalance  = "INSUFFICIENT_BALANCE"
	ErrCodeConflict             = "CONFLICT"
	ErrCodeBalanceUpdateFailed  = "BALANCE_UPDATE_FAILED"
	ErrCodeCompensationFailed   = "COMPENSATION_FAILED"
	ErrCodeOperationFailed      = "OPERATION_FAILED"
	ErrCodeInternalError        = "INTERNAL_ERROR"
	ErrCodeRouteNotFound        = "ROUTE_NOT_FOUND"
	ErrCodeUserDirectoryFailure = "USER_DIRECTORY_FAILURE"
)

const (
	ErrMsgUserNotFound         = "user not found"
	ErrMsgSaldoNotFound        = "saldo not found"
	ErrMsgTopupNotFound        = "topup not found"
	ErrMsgTransferNotFound     = "transfer not found"
	ErrMsgWithdrawNotFound     = "withdraw not found"
	ErrMsgValidationFailed     = "validation failed"
	ErrMsgInvalidRequestBody   = "failed to parse request body"
	ErrMsgInsufficientBalance  = "insufficient balance"
	ErrMsgConflict             = "balance was modified concurrently, please retry"
	ErrMsgBalanceUpdateFailed  = "failed to update balance"
	ErrMsgCompensationFailed   = "operation failed and could not be fully reverted"
	ErrMsgOperationFailed      = "operation failed"
	ErrMsgInternalError        = "Internal server error"
	ErrMsgRouteNotFound        = "route not found"
	ErrMsgUserDirectoryFailure = "user directory unavailable"
)

const MessageErrorFormat = "%s is invalid"

var errorMessages = map[string]string{
	ErrCodeUserNotFound:         ErrMsgUserNotFound,
	ErrCodeSaldoNotFound:        ErrMsgSaldoNotFound,
	ErrCodeTopupNotFound:        ErrMsgTopupNotFound,
	ErrCodeTransferNotFound:     ErrMsgTransferNotFound,
	ErrCodeWithdrawNotFound:     ErrMsgWithdrawNotFound,
	ErrCodeValidationFailed:     ErrMsgValidationFailed,
	ErrCodeInvalidRequestBody:   ErrMsgInvalidRequestBody,
	ErrCodeInsufficientBalance:  ErrMsgInsufficientBalance,
	ErrCodeConflict:             ErrMsgConflict,
	ErrCodeBalanceUpdateFailed:  ErrMsgBalanceUpdateFailed,
	ErrCodeCompensationFailed:   ErrMsgCompensationFailed,
	ErrCodeOperationFailed:      ErrMsgOperationFailed,
	ErrCodeInternalError:        ErrMsgInternalError,
	ErrCodeRouteNotFound:        ErrMsgRouteNotFound,
	ErrCodeUserDirectoryFailure: ErrMsgUserDirectoryFailure,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeUserNotFound, ErrCodeSaldoNotFound, ErrCodeTopupNotFound,
		ErrCodeTransferNotFound, ErrCodeWithdrawNotFound, ErrCodeRouteNotFound:
		return http.StatusNotFound
	case ErrCodeValidationFailed, ErrCodeInvalidRequestBody, ErrCodeInsufficientBalance:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
