package model

import "time"

type Transfer struct {
	ID           int64     `gorm:"column:transfer_id;primaryKey;autoIncrement" json:"transfer_id"`
	FromUserID   int64     `gorm:"column:transfer_from;index;not null" json:"transfer_from"`
	ToUserID     int64     `gorm:"column:transfer_to;index;not null" json:"transfer_to"`
	Amount       int64     `gorm:"column:transfer_amount;not null" json:"transfer_amount"`
	TransferTime time.Time `gorm:"column:transfer_time;not null" json:"transfer_time"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Transfer) TableName() string {
	return "transfers"
}
