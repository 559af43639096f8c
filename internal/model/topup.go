package model

import "time"

type Topup struct {
	ID        int64     `gorm:"column:topup_id;primaryKey;autoIncrement" json:"topup_id"`
	UserID    int64     `gorm:"column:user_id;index;not null" json:"user_id"`
	TopupNo   string    `gorm:"column:topup_no;type:text;not null" json:"topup_no"`
	Amount    int64     `gorm:"column:topup_amount;not null" json:"topup_amount"`
	Method    string    `gorm:"column:topup_method;type:varchar(32);not null" json:"topup_method"`
	TopupTime time.Time `gorm:"column:topup_time;not null" json:"topup_time"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Topup) TableName() string {
	return "topups"
}
