package repositories

import (
	"time"

	"mechadex/internal/models"
)

// SessionRepository stores login sessions.
type SessionRepository interface {
	Create(session *models.Session) error
	GetByID(id string) (*models.Session, error)
	// Delete removes the session. Deleting a missing session is not an error.
	Delete(id string) error
	// DeleteExpired removes every session that expired at or before t and
	// reports how many were removed.
	DeleteExpired(t time.Time) (int64, error)
}
