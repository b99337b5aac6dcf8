package services

import (
	"fmt"

	"mechadex/internal/models"
	"mechadex/internal/repositories"
)

// CatalogService handles business logic for mechs and their attacks.
type CatalogService struct {
	mechRepo   repositories.MechRepository
	attackRepo repositories.AttackRepository
	publisher  EventPublisher // nil disables events
}

// NewCatalogService creates a new CatalogService. publisher may be nil.
func NewCatalogService(mechRepo repositories.MechRepository, attackRepo repositories.AttackRepository, publisher EventPublisher) *CatalogService {
	return &CatalogService{
		mechRepo:   mechRepo,
		attackRepo: attackRepo,
		publisher:  publisher,
	}
}

// ListMechs retrieves all mechs.
func (s *CatalogService) ListMechs() ([]models.Mech, error) {
	return s.mechRepo.GetAll()
}

// GetMech retrieves a mech with its attacks.
func (s *CatalogService) GetMech(id uint) (*models.Mech, error) {
	return s.mechRepo.GetByID(id)
}

// GetAttack retrieves an attack with its mech.
func (s *CatalogService) GetAttack(id uint) (*models.Attack, error) {
	return s.attackRepo.GetByID(id)
}

// CreateMech validates and stores a new mech.
func (s *CatalogService) CreateMech(in MechInput) (*models.Mech, error) {
	mech, err := ValidateMech(in)
	if err != nil {
		return nil, err
	}
	if err := s.mechRepo.Create(mech); err != nil {
		return nil, err
	}
	publish(s.publisher, CatalogEvent{Type: EventMechCreated, MechID: mech.ID, Name: mech.Name})
	return mech, nil
}

// UpdateMech overwrites an existing mech.
func (s *CatalogService) UpdateMech(id uint, in MechInput) (*models.Mech, error) {
	if _, err := s.mechRepo.GetByID(id); err != nil {
		return nil, err
	}
	mech, err := ValidateMech(in)
	if err != nil {
		return nil, err
	}
	mech.ID = id
	if err := s.mechRepo.Update(mech); err != nil {
		return nil, err
	}
	publish(s.publisher, CatalogEvent{Type: EventMechUpdated, MechID: mech.ID, Name: mech.Name})
	return s.mechRepo.GetByID(id)
}

// CreateAttack validates and stores a new attack for an existing mech.
func (s *CatalogService) CreateAttack(in AttackInput) (*models.Attack, error) {
	attack, err := ValidateAttack(in)
	if err != nil {
		return nil, err
	}
	if _, err := s.mechRepo.GetByID(attack.MechID); err != nil {
		return nil, fmt.Errorf("attack owner: %w", err)
	}
	if err := s.attackRepo.Create(attack); err != nil {
		return nil, err
	}
	publish(s.publisher, CatalogEvent{Type: EventAttackCreated, MechID: attack.MechID, AttackID: attack.ID, Name: attack.Name})
	return s.attackRepo.GetByID(attack.ID)
}

// UpdateAttack overwrites name, potency and owner of an existing attack.
func (s *CatalogService) UpdateAttack(id uint, in AttackInput) (*models.Attack, error) {
	if _, err := s.attackRepo.GetByID(id); err != nil {
		return nil, err
	}
	attack, err := ValidateAttack(in)
	if err != nil {
		return nil, err
	}
	if _, err := s.mechRepo.GetByID(attack.MechID); err != nil {
		return nil, fmt.Errorf("attack owner: %w", err)
	}
	attack.ID = id
	if err := s.attackRepo.Update(attack); err != nil {
		return nil, err
	}
	publish(s.publisher, CatalogEvent{Type: EventAttackUpdated, MechID: attack.MechID, AttackID: attack.ID, Name: attack.Name})
	return s.attackRepo.GetByID(id)
}

// DeleteAttack removes an attack. Its mech is left in place.
func (s *CatalogService) DeleteAttack(id uint) error {
	attack, err := s.attackRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.attackRepo.Delete(id); err != nil {
		return err
	}
	publish(s.publisher, CatalogEvent{Type: EventAttackDeleted, MechID: attack.MechID, AttackID: id, Name: attack.Name})
	return nil
}
