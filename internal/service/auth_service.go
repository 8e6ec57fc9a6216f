package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/aalkhodiry/ikhtibar/internal/model"
	"github.com/aalkhodiry/ikhtibar/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const usersKey = "examAppUsers"

var (
	ErrEmailTaken         = errors.New("this email is already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService is the credential and session provider. Account records are
// persisted through the key-value store; bearer tokens live in memory for
// the lifetime of the process.
type AuthService interface {
	Register(email, password string, role model.Role) (model.User, string, error)
	Login(email, password string) (model.User, string, error)
	Logout(token string)
	// CurrentUser resolves a bearer token to its account, reporting false
	// for unknown or expired tokens.
	CurrentUser(token string) (model.User, bool)

	Users() ([]model.User, error)
	UserCount() (int, error)
	UpdateUserRole(userID string, role model.Role) (model.User, error)
	DeleteUser(userID string) error
	SeedDemoAccounts() error
}

type authService struct {
	mu      sync.Mutex
	storage repository.StorageRepository
	tokens  map[string]string // token -> email
}

func NewAuthService(storage repository.StorageRepository) AuthService {
	return &authService{storage: storage, tokens: make(map[string]string)}
}

// loadUsers returns the account map keyed by email. Callers must hold s.mu.
func (s *authService) loadUsers() (map[string]model.User, error) {
	raw, err := s.storage.Get(usersKey)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return map[string]model.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading accounts: %w", err)
	}
	var users map[string]model.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("decoding accounts: %w", err)
	}
	return users, nil
}

func (s *authService) saveUsers(users map[string]model.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("%w: encoding accounts: %v", ErrPersistence, err)
	}
	if err := s.storage.Set(usersKey, string(raw)); err != nil {
		return fmt.Errorf("%w: writing accounts: %v", ErrPersistence, err)
	}
	return nil
}

func (s *authService) Register(email, password string, role model.Role) (model.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return model.User{}, "", err
	}
	if _, exists := users[email]; exists {
		return model.User{}, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, "", fmt.Errorf("hashing password: %w", err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Role:         role,
		JoinDate:     time.Now().UTC(),
		PasswordHash: string(hash),
	}
	users[email] = user
	if err := s.saveUsers(users); err != nil {
		return model.User{}, "", err
	}

	token := uuid.NewString()
	s.tokens[token] = email
	log.Info().Str("email", email).Str("role", string(role)).Msg("Registered new account")
	return sanitize(user), token, nil
}

func (s *authService) Login(email, password string) (model.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return model.User{}, "", err
	}
	user, exists := users[email]
	if !exists {
		return model.User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.User{}, "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	s.tokens[token] = email
	return sanitize(user), token, nil
}

func (s *authService) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

func (s *authService) CurrentUser(token string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email, ok := s.tokens[token]
	if !ok {
		return model.User{}, false
	}
	users, err := s.loadUsers()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load accounts while resolving token")
		return model.User{}, false
	}
	user, exists := users[email]
	if !exists {
		// Account deleted while the token was still live.
		delete(s.tokens, token)
		return model.User{}, false
	}
	return sanitize(user), true
}

func (s *authService) Users() ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	list := make([]model.User, 0, len(users))
	for _, u := range users {
		list = append(list, sanitize(u))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Email < list[j].Email })
	return list, nil
}

func (s *authService) UserCount() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

func (s *authService) UpdateUserRole(userID string, role model.Role) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return model.User{}, err
	}
	for email, u := range users {
		if u.ID == userID {
			u.Role = role
			users[email] = u
			if err := s.saveUsers(users); err != nil {
				return model.User{}, err
			}
			return sanitize(u), nil
		}
	}
	return model.User{}, ErrUserNotFound
}

func (s *authService) DeleteUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	for email, u := range users {
		if u.ID == userID {
			delete(users, email)
			return s.saveUsers(users)
		}
	}
	return ErrUserNotFound
}

// SeedDemoAccounts creates the demo admin and student accounts on first
// boot. Existing accounts are never overwritten.
func (s *authService) SeedDemoAccounts() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	seed := []struct {
		email string
		role  model.Role
	}{
		{"admin@demo.com", model.RoleAdmin},
		{"student@demo.com", model.RoleUser},
	}
	for _, acct := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing demo password: %w", err)
		}
		users[acct.email] = model.User{
			ID:           uuid.NewString(),
			Email:        acct.email,
			Role:         acct.role,
			JoinDate:     time.Now().UTC(),
			PasswordHash: string(hash),
		}
	}
	if err := s.saveUsers(users); err != nil {
		return err
	}
	log.Info().Msg("Seeded demo accounts")
	return nil
}

func sanitize(u model.User) model.User {
	u.PasswordHash = ""
	return u
}
