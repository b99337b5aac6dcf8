package models

import "time"

// Session is the server-side record behind a login cookie.
type Session struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	UserID    uint      `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// IsExpiredAt reports whether the session is no longer valid at t.
func (s *Session) IsExpiredAt(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}
