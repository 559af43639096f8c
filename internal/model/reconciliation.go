package model

import "time"

const (
	RecordKindTopup    = "topup"
	RecordKindTransfer = "transfer"
	RecordKindWithdraw = "withdraw"
)

const (
	ReconcileActionDeleteRecord  = "DELETE_RECORD"
	ReconcileActionAdjustBalance = "ADJUST_BALANCE"
)

const (
	ReconcileStatePending  = "PENDING"
	ReconcileStateResolved = "RESOLVED"
	ReconcileStateFailed   = "FAILED"
)

// Reconciliation is a compensation that could not be applied inline and
// has to be replayed by the reconcile worker.
type Reconciliation struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Operation   string     `gorm:"column:operation;type:varchar(32);not null"`
	Step        string     `gorm:"column:step;type:varchar(64);not null"`
	Action      string     `gorm:"column:action;type:varchar(32);not null"`
	RecordKind  string     `gorm:"column:record_kind;type:varchar(16);not null"`
	RecordID    int64      `gorm:"column:record_id"`
	UserID      int64      `gorm:"column:user_id"`
	Amount      int64      `gorm:"column:amount"`
	State       string     `gorm:"column:state;type:varchar(16);not null;index"`
	Published   bool       `gorm:"column:published;not null;default:false"`
	PublishedAt *time.Time `gorm:"column:published_at"`
	LastError   *string    `gorm:"column:last_error;type:text"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (Reconciliation) TableName() string {
	return "reconciliations"
}
