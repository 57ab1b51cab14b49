package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/RushabhMehta2005/stores-api/models"
	"github.com/RushabhMehta2005/stores-api/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
)

// UserStore is the persistence the auth service needs.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
}

// AuthService checks credentials and issues access tokens.
type AuthService struct {
	users  UserStore
	hasher *Hasher
	tokens *TokenManager
}

func NewAuthService(users UserStore, hasher *Hasher, tokens *TokenManager) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Authenticate returns a signed token for a matching username and password.
// Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("looking up user: %w", err)
	}

	if err := s.hasher.Compare(ctx, user.Password, password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("checking password: %w", err)
	}

	return s.tokens.Generate(user.ID)
}

// Refresh issues a fresh token for an already authenticated user.
func (s *AuthService) Refresh(userID uint) (string, error) {
	return s.tokens.Generate(userID)
}

// Register stores a new user with a hashed password.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	hash, err := s.hasher.GenerateHash(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{Username: username, Password: hash}
	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("saving user: %w", err)
	}
	return user, nil
}
