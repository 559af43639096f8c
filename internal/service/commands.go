package service

type CreateTopupCommand struct {
	UserID  int64
	TopupNo string
	Amount  int64
	Method  string
}

type UpdateTopupCommand struct {
	TopupID int64
	Amount  int64
	// Method is left unchanged when empty.
	Method string
}

type CreateTransferCommand struct {
	FromUserID int64
	ToUserID   int64
	Amount     int64
}

type UpdateTransferCommand struct {
	TransferID int64
	Amount     int64
}

type CreateWithdrawCommand struct {
	UserID int64
	Amount int64
}

type UpdateWithdrawCommand struct {
	WithdrawID int64
	Amount     int64
}

type ReconcileCommand struct {
	TaskID     int64  `json:"task_id"`
	Action     string `json:"action"`
	RecordKind string `json:"record_kind"`
	RecordID   int64  `json:"record_id"`
	UserID     int64  `json:"user_id"`
	Amount     int64  `json:"amount"`
}
