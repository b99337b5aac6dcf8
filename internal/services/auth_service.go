package services

import (
	"errors"
	"fmt"
	"time"

	"mechadex/internal/logger"
	"mechadex/internal/models"
	"mechadex/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultSessionTTL is used when NewAuthService receives a non-positive TTL.
const DefaultSessionTTL = 24 * time.Hour

// AuthService handles signup, login and session resolution.
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	jwtSecret   []byte
	sessionTTL  time.Duration
	now         func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, jwtSecret string, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtSecret:   []byte(jwtSecret),
		sessionTTL:  sessionTTL,
		now:         time.Now,
	}
}

// Register creates a user with a bcrypt hash of password.
func (s *AuthService) Register(username, password string) (*models.User, error) {
	if err := ValidateCredentials(username, password); err != nil {
		return nil, err
	}

	_, err := s.userRepo.GetByUsername(username)
	if err == nil {
		return nil, ErrDuplicateUsername
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: username, PasswordHash: string(hashedPassword)}
	if err := s.userRepo.Create(user); err != nil {
		// lost a race with a concurrent signup
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	logger.Infof("registered user %s (ID: %d)", user.Username, user.ID)
	return user, nil
}

// Authenticate verifies the credentials and opens a new session.
func (s *AuthService) Authenticate(username, password string) (*models.Session, error) {
	if err := ValidateLogin(username, password); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrPasswordMismatch
		}
		return nil, fmt.Errorf("failed to verify password for %s: %w", username, err)
	}

	return s.openSession(user)
}

// StartSession opens a session for a user that was just registered.
func (s *AuthService) StartSession(user *models.User) (*models.Session, error) {
	return s.openSession(user)
}

func (s *AuthService) openSession(user *models.User) (*models.Session, error) {
	s.pruneSessions()

	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	return session, nil
}

// IssueToken signs a cookie token naming the session.
func (s *AuthService) IssueToken(session *models.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":     session.ID,
		"user_id": session.UserID,
		"exp":     session.ExpiresAt.Unix(),
		"iat":     s.now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ParseToken validates a cookie token and returns the session ID it names.
func (s *AuthService) ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", fmt.Errorf("invalid token: missing session id")
	}
	return sid, nil
}

// CurrentUser resolves a cookie token to its user. A missing, malformed,
// expired or revoked token yields a nil user and no error; only storage
// failures are reported.
func (s *AuthService) CurrentUser(tokenString string) (*models.User, error) {
	if tokenString == "" {
		return nil, nil
	}
	sid, err := s.ParseToken(tokenString)
	if err != nil {
		logger.Debugf("ignoring session cookie: %v", err)
		return nil, nil
	}

	session, err := s.sessionRepo.GetByID(sid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if session.IsExpiredAt(s.now()) {
		if err := s.sessionRepo.Delete(session.ID); err != nil {
			logger.Warningf("failed to drop expired session %s: %v", session.ID, err)
		}
		return nil, nil
	}

	user, err := s.userRepo.GetByID(session.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// Logout revokes the session named by the token. Unknown or invalid tokens
// are ignored.
func (s *AuthService) Logout(tokenString string) error {
	if tokenString == "" {
		return nil
	}
	sid, err := s.ParseToken(tokenString)
	if err != nil {
		return nil
	}
	if err := s.sessionRepo.Delete(sid); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// pruneSessions drops sessions whose cookies were never presented again.
// Failures only delay the cleanup until the next login.
func (s *AuthService) pruneSessions() {
	removed, err := s.sessionRepo.DeleteExpired(s.now())
	if err != nil {
		logger.Warningf("failed to prune expired sessions: %v", err)
		return
	}
	if removed > 0 {
		logger.Debugf("pruned %d expired sessions", removed)
	}
}
