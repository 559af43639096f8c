package userdirectory

import (
	"errors"
	"net/http"
)

var (
	ErrUserNotFound = errors.New("USER_NOT_FOUND")
	ErrTimeout      = errors.New("TIMEOUT")
	ErrServerError  = errors.New("SERVER_ERROR")
)

var statusErrorMap = map[int]error{
	http.StatusNotFound: ErrUserNotFound,
}

func MapStatusToError(statusCode int) error {
	if err, exists := statusErrorMap[statusCode]; exists {
		return err
	}

	return ErrServerError
}
