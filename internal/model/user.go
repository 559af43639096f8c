package model

import "time"

// User is the read-only projection of the identity service's users table.
type User struct {
	ID        int64     `gorm:"column:user_id;primaryKey" json:"user_id"`
	Firstname string    `gorm:"column:firstname" json:"firstname"`
	Lastname  string    `gorm:"column:lastname" json:"lastname"`
	Email     string    `gorm:"column:email" json:"email"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
