package repositories

import (
	"errors"
	"fmt"
	"time"

	"mechadex/internal/models"

	"gorm.io/gorm"
)

// GORMSessionRepository is a GORM implementation of SessionRepository.
type GORMSessionRepository struct {
	db *gorm.DB
}

// NewGORMSessionRepository creates a new instance of GORMSessionRepository.
func NewGORMSessionRepository(db *gorm.DB) *GORMSessionRepository {
	return &GORMSessionRepository{db: db}
}

// Create stores a new session.
func (r *GORMSessionRepository) Create(session *models.Session) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetByID retrieves a session by its ID.
func (r *GORMSessionRepository) GetByID(id string) (*models.Session, error) {
	var session models.Session
	if err := r.db.First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}
	return &session, nil
}

// Delete removes a session if it exists.
func (r *GORMSessionRepository) Delete(id string) error {
	if err := r.db.Delete(&models.Session{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

// DeleteExpired removes every session that expired at or before t.
func (r *GORMSessionRepository) DeleteExpired(t time.Time) (int64, error) {
	res := r.db.Where("expires_at <= ?", t).Delete(&models.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
