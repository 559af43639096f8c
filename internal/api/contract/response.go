package contract

import (
	"github.com/Behyna/saldo-service/internal/constants"
	"github.com/google/uuid"
)

type Response struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	TrackID string `json:"x_track_id"`
	Result  any    `json:"result,omitempty"`
}

func Success(message string, result any) Response {
	return Response{
		Status:  constants.StatusSuccess,
		Code:    constants.StatusSuccess,
		Message: message,
		TrackID: uuid.NewString(),
		Result:  result,
	}
}

func Failure(code, message string) Response {
	return Response{
		Status:  constants.StatusError,
		Code:    code,
		Message: message,
		TrackID: uuid.NewString(),
	}
}
