package db_models

import "time"

type User struct {
	BaseModel
	Username     string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}
