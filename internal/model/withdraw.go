package model

import "time"

type Withdraw struct {
	ID           int64     `gorm:"column:withdraw_id;primaryKey;autoIncrement" json:"withdraw_id"`
	UserID       int64     `gorm:"column:user_id;index;not null" json:"user_id"`
	Amount       int64     `gorm:"column:withdraw_amount;not null" json:"withdraw_amount"`
	WithdrawTime time.Time `gorm:"column:withdraw_time;not null" json:"withdraw_time"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Withdraw) TableName() string {
	return "withdraws"
}
