package models

import "time"

// User is an account allowed to edit the catalogue.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"uniqueIndex;type:varchar(80);not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never the plaintext
	CreatedAt    time.Time `json:"created_at"`
}
