package constants

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

const (
	SaldosRetrieved    = "saldos retrieved successfully"
	SaldoRetrieved     = "saldo retrieved successfully"
	TopupCreated       = "topup created successfully"
	TopupUpdated       = "topup updated successfully"
	TopupDeleted       = "topup deleted successfully"
	TopupRetrieved     = "topup retrieved successfully"
	TopupsRetrieved    = "topups retrieved successfully"
	TransferCreated    = "transfer created successfully"
	TransferUpdated    = "transfer updated successfully"
	TransferDeleted    = "transfer deleted successfully"
	TransferRetrieved  = "transfer retrieved successfully"
	TransfersRetrieved = "transfers retrieved successfully"
	WithdrawCreated    = "withdraw created successfully"
	WithdrawUpdated    = "withdraw updated successfully"
	WithdrawDeleted    = "withdraw deleted successfully"
	WithdrawRetrieved  = "withdraw retrieved successfully"
	WithdrawsRetrieved = "withdraws retrieved successfully"
)
