package models

import (
	"time"
)

type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Login        string     `json:"login" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"type:varchar(255);not null"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
