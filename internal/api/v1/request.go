package v1

type CreateTopupRequest struct {
	UserID  int64  `json:"user_id" validate:"required,min=1"`
	TopupNo string `json:"topup_no" validate:"omitempty,max=64"`
	Amount  int64  `json:"topup_amount" validate:"required,min=1"`
	Method  string `json:"topup_method" validate:"required,payment_method"`
}

type UpdateTopupRequest struct {
	Amount int64  `json:"topup_amount" validate:"required,min=1"`
	Method string `json:"topup_method" validate:"omitempty,payment_method"`
}

type CreateTransferRequest struct {
	FromUserID int64 `json:"transfer_from" validate:"required,min=1"`
	ToUserID   int64 `json:"transfer_to" validate:"required,min=1,nefield=FromUserID"`
	Amount     int64 `json:"transfer_amount" validate:"required,min=1"`
}

type UpdateTransferRequest struct {
	Amount int64 `json:"transfer_amount" validate:"required,min=1"`
}

type CreateWithdrawRequest struct {
	UserID int64 `json:"user_id" validate:"required,min=1"`
	Amount int64 `json:"withdraw_amount" validate:"required,min=1"`
}

type UpdateWithdrawRequest struct {
	Amount int64 `json:"withdraw_amount" validate:"required,min=1"`
}
