package repository

import (
	"errors"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrSaldoNotFound          = errors.New("SALDO_NOT_FOUND")
	ErrSaldoExists            = errors.New("SALDO_EXISTS")
	ErrVersionConflict        = errors.New("VERSION_CONFLICT")
	ErrTopupNotFound          = errors.New("TOPUP_NOT_FOUND")
	ErrTransferNotFound       = errors.New("TRANSFER_NOT_FOUND")
	ErrWithdrawNotFound       = errors.New("WITHDRAW_NOT_FOUND")
	ErrUserNotFound           = errors.New("USER_NOT_FOUND")
	ErrReconciliationNotFound = errors.New("RECONCILIATION_NOT_FOUND")
	ErrReconciliationState    = errors.New("RECONCILIATION_STATE_CHANGED")
)

const mysqlDuplicateEntry = 1062

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var mysqlErr *mysqlDriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
