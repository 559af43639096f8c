package model

import "time"

type Saldo struct {
	ID             int64      `gorm:"column:saldo_id;primaryKey;autoIncrement" json:"saldo_id"`
	UserID         int64      `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	TotalBalance   int64      `gorm:"column:total_balance;not null" json:"total_balance"`
	WithdrawAmount *int64     `gorm:"column:withdraw_amount" json:"withdraw_amount,omitempty"`
	WithdrawTime   *time.Time `gorm:"column:withdraw_time" json:"withdraw_time,omitempty"`
	Version        int64      `gorm:"column:version;not null;default:0" json:"-"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Saldo) TableName() string {
	return "saldos"
}
