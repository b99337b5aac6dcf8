package repositories

import (
	"fmt"
	"sync"
	"time"

	"mechadex/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users  map[uint]models.User
	nextID uint
	mu     sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uint]models.User),
	}
}

// Create adds a new user, rejecting a username that is already taken.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return fmt.Errorf("username %s: %w", user.Username, ErrDuplicate)
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

// GetByUsername returns the user with exactly that username.
func (r *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with username %s: %w", username, ErrNotFound)
}

// GetByID returns a user by ID.
func (r *MockUserRepository) GetByID(id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %d: %w", id, ErrNotFound)
	}
	return &user, nil
}

// MockSessionRepository is an in-memory implementation of SessionRepository.
type MockSessionRepository struct {
	sessions map[string]models.Session
	mu       sync.RWMutex
}

// NewMockSessionRepository creates a new instance of MockSessionRepository.
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		sessions: make(map[string]models.Session),
	}
}

// Create stores a session.
func (r *MockSessionRepository) Create(session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	r.sessions[session.ID] = *session
	return nil
}

// GetByID returns a session by ID.
func (r *MockSessionRepository) GetByID(id string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return &session, nil
}

// Delete removes a session; missing sessions are ignored.
func (r *MockSessionRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

// DeleteExpired removes every session that expired at or before t.
func (r *MockSessionRepository) DeleteExpired(t time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, session := range r.sessions {
		if session.IsExpiredAt(t) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}
