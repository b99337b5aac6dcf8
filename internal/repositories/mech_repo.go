package repositories

import (
	"mechadex/internal/models"
)

// MechRepository defines the interface for mech data access.
type MechRepository interface {
	GetAll() ([]models.Mech, error)
	// GetByID returns the mech with its attacks loaded.
	GetByID(id uint) (*models.Mech, error)
	Create(mech *models.Mech) error
	Update(mech *models.Mech) error
}
