package repositories

import (
	"errors"
	"fmt"

	"mechadex/internal/models"

	"gorm.io/gorm"
)

// GORMAttackRepository is a GORM implementation of AttackRepository.
type GORMAttackRepository struct {
	db *gorm.DB
}

// NewGORMAttackRepository creates a new instance of GORMAttackRepository.
func NewGORMAttackRepository(db *gorm.DB) *GORMAttackRepository {
	return &GORMAttackRepository{
		db: db,
	}
}

// GetByID retrieves a single attack together with its mech.
func (r *GORMAttackRepository) GetByID(id uint) (*models.Attack, error) {
	var attack models.Attack
	if err := r.db.Preload("Mech").First(&attack, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("attack with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get attack by ID %d: %w", id, err)
	}
	return &attack, nil
}

// Create inserts a new attack. The Mech association is never upserted.
func (r *GORMAttackRepository) Create(attack *models.Attack) error {
	if err := r.db.Omit("Mech").Create(attack).Error; err != nil {
		return fmt.Errorf("failed to create attack: %w", err)
	}
	return nil
}

// Update overwrites name, potency and mech reference of an existing attack.
func (r *GORMAttackRepository) Update(attack *models.Attack) error {
	res := r.db.Model(&models.Attack{}).Where("id = ?", attack.ID).Updates(map[string]interface{}{
		"name":           attack.Name,
		"attack_potency": attack.AttackPotency,
		"mech_id":        attack.MechID,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update attack: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("attack with ID %d not updated: %w", attack.ID, ErrNotFound)
	}
	return nil
}

// Delete removes an attack by its ID. The owning mech is left untouched.
func (r *GORMAttackRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Attack{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete attack: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("attack with ID %d not deleted: %w", id, ErrNotFound)
	}
	return nil
}
