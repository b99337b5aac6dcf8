package repositories

import (
	"fmt"
	"sort"
	"sync"

	"mechadex/internal/models"
)

// memoryCatalog holds mechs and attacks for the in-memory repositories. Both
// repositories share it so that preloading works in either direction.
type memoryCatalog struct {
	mu           sync.RWMutex
	mechs        map[uint]models.Mech
	attacks      map[uint]models.Attack
	nextMechID   uint
	nextAttackID uint
}

// MockMechRepository is an in-memory implementation of MechRepository.
type MockMechRepository struct {
	c *memoryCatalog
}

// MockAttackRepository is an in-memory implementation of AttackRepository.
type MockAttackRepository struct {
	c *memoryCatalog
}

// NewMockCatalog creates a mech and an attack repository backed by the same
// in-memory tables.
func NewMockCatalog() (*MockMechRepository, *MockAttackRepository) {
	c := &memoryCatalog{
		mechs:   make(map[uint]models.Mech),
		attacks: make(map[uint]models.Attack),
	}
	return &MockMechRepository{c: c}, &MockAttackRepository{c: c}
}

// GetAll returns all mechs ordered by ID.
func (r *MockMechRepository) GetAll() ([]models.Mech, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	mechList := make([]models.Mech, 0, len(r.c.mechs))
	for _, m := range r.c.mechs {
		mechList = append(mechList, m)
	}
	sort.Slice(mechList, func(i, j int) bool { return mechList[i].ID < mechList[j].ID })
	return mechList, nil
}

// GetByID returns a mech and its attacks.
func (r *MockMechRepository) GetByID(id uint) (*models.Mech, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	mech, ok := r.c.mechs[id]
	if !ok {
		return nil, fmt.Errorf("mech with ID %d: %w", id, ErrNotFound)
	}
	mech.Attacks = r.c.attacksOf(id)
	return &mech, nil
}

// Create adds a new mech and assigns its ID.
func (r *MockMechRepository) Create(mech *models.Mech) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	r.c.nextMechID++
	mech.ID = r.c.nextMechID
	stored := *mech
	stored.Attacks = nil
	r.c.mechs[mech.ID] = stored
	return nil
}

// Update modifies an existing mech.
func (r *MockMechRepository) Update(mech *models.Mech) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if _, ok := r.c.mechs[mech.ID]; !ok {
		return fmt.Errorf("mech with ID %d not updated: %w", mech.ID, ErrNotFound)
	}
	stored := *mech
	stored.Attacks = nil
	r.c.mechs[mech.ID] = stored
	return nil
}

// GetByID returns an attack and its mech.
func (r *MockAttackRepository) GetByID(id uint) (*models.Attack, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	attack, ok := r.c.attacks[id]
	if !ok {
		return nil, fmt.Errorf("attack with ID %d: %w", id, ErrNotFound)
	}
	if mech, ok := r.c.mechs[attack.MechID]; ok {
		attack.Mech = &mech
	}
	return &attack, nil
}

// Create adds a new attack. The referenced mech must exist, mirroring the
// foreign key of the SQL schema.
func (r *MockAttackRepository) Create(attack *models.Attack) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if _, ok := r.c.mechs[attack.MechID]; !ok {
		return fmt.Errorf("failed to create attack: mech with ID %d: %w", attack.MechID, ErrNotFound)
	}
	r.c.nextAttackID++
	attack.ID = r.c.nextAttackID
	stored := *attack
	stored.Mech = nil
	r.c.attacks[attack.ID] = stored
	return nil
}

// Update overwrites an existing attack.
func (r *MockAttackRepository) Update(attack *models.Attack) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if _, ok := r.c.attacks[attack.ID]; !ok {
		return fmt.Errorf("attack with ID %d not updated: %w", attack.ID, ErrNotFound)
	}
	if _, ok := r.c.mechs[attack.MechID]; !ok {
		return fmt.Errorf("failed to update attack: mech with ID %d: %w", attack.MechID, ErrNotFound)
	}
	stored := *attack
	stored.Mech = nil
	r.c.attacks[attack.ID] = stored
	return nil
}

// Delete removes an attack by its ID.
func (r *MockAttackRepository) Delete(id uint) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if _, ok := r.c.attacks[id]; !ok {
		return fmt.Errorf("attack with ID %d not deleted: %w", id, ErrNotFound)
	}
	delete(r.c.attacks, id)
	return nil
}

// attacksOf must be called with the lock held.
func (c *memoryCatalog) attacksOf(mechID uint) []models.Attack {
	var out []models.Attack
	for _, a := range c.attacks {
		if a.MechID == mechID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
