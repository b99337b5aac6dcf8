package repositories

import (
	"mechadex/internal/models"
)

// AttackRepository defines the interface for attack data access.
type AttackRepository interface {
	// GetByID returns the attack with its owning mech loaded.
	GetByID(id uint) (*models.Attack, error)
	Create(attack *models.Attack) error
	Update(attack *models.Attack) error
	Delete(id uint) error
}
