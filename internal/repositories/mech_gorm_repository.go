package repositories

import (
	"errors"
	"fmt"

	"mechadex/internal/models"

	"gorm.io/gorm"
)

// GORMMechRepository is a GORM implementation of MechRepository.
type GORMMechRepository struct {
	db *gorm.DB
}

// NewGORMMechRepository creates a new instance of GORMMechRepository.
func NewGORMMechRepository(db *gorm.DB) *GORMMechRepository {
	return &GORMMechRepository{
		db: db,
	}
}

// GetAll retrieves all mechs ordered by ID.
func (r *GORMMechRepository) GetAll() ([]models.Mech, error) {
	var mechs []models.Mech
	if err := r.db.Order("id").Find(&mechs).Error; err != nil {
		return nil, fmt.Errorf("failed to get all mechs: %w", err)
	}
	return mechs, nil
}

// GetByID retrieves a single mech and its attacks.
func (r *GORMMechRepository) GetByID(id uint) (*models.Mech, error) {
	var mech models.Mech
	err := r.db.Preload("Attacks", func(db *gorm.DB) *gorm.DB {
		return db.Order("attacks.id")
	}).First(&mech, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("mech with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get mech by ID %d: %w", id, err)
	}
	return &mech, nil
}

// Create inserts a new mech. Attacks are never written through the mech.
func (r *GORMMechRepository) Create(mech *models.Mech) error {
	if err := r.db.Omit("Attacks").Create(mech).Error; err != nil {
		return fmt.Errorf("failed to create mech: %w", err)
	}
	return nil
}

// Update overwrites every column of an existing mech.
func (r *GORMMechRepository) Update(mech *models.Mech) error {
	res := r.db.Model(&models.Mech{}).Where("id = ?", mech.ID).Updates(map[string]interface{}{
		"name":     mech.Name,
		"series":   mech.Series,
		"category": mech.Category,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update mech: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("mech with ID %d not updated: %w", mech.ID, ErrNotFound)
	}
	return nil
}
