package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fullstack-app/apiserver/internal/credentials"
	"github.com/fullstack-app/apiserver/internal/store"
	"github.com/fullstack-app/apiserver/internal/token"
	"github.com/fullstack-app/apiserver/types"
)

// ErrWrongPassword is returned by Login when the candidate password does
// not match the stored hash.
var ErrWrongPassword = errors.New("wrong password")

// UserRepository defines the persistence operations the service needs.
type UserRepository interface {
	Register(ctx context.Context, email, password string) error
	GetByEmail(ctx context.Context, email string) (*types.User, error)
	GetByID(ctx context.Context, id string) (*types.User, error)
}

// AuthService orchestrates register, login, and authenticated lookup.
// Each operation is a short stateless pipeline: validate, store I/O,
// token issuance. A failed step short-circuits; nothing is retried.
type AuthService struct {
	repo     UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(repo UserRepository, secret string) *AuthService {
	return &AuthService{
		repo:     repo,
		secret:   []byte(secret),
		tokenTTL: token.DefaultTTL,
	}
}

// Register creates an identity record and returns a session token for
// it. The record is re-fetched after the write; a miss there means the
// store is inconsistent and surfaces as an internal error.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	if err := s.repo.Register(ctx, email, password); err != nil {
		return "", err
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", fmt.Errorf("user %q missing after registration: %w", email, store.ErrNotFound)
	}

	return token.Issue(user.Public(), s.secret, s.tokenTTL)
}

// Login verifies the credentials and returns a session token.
// A missing user returns store.ErrNotFound; a bad password returns
// ErrWrongPassword.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", store.ErrNotFound
	}

	if !credentials.ComparePassword(password, user.PasswordHash) {
		return "", ErrWrongPassword
	}

	return token.Issue(user.Public(), s.secret, s.tokenTTL)
}

// CurrentUser returns the public view for an already-authenticated
// external id. Token verification happens at the HTTP boundary; this
// only resolves and projects the identity.
func (s *AuthService) CurrentUser(ctx context.Context, id string) (types.PublicUser, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.PublicUser{}, err
	}
	if user == nil {
		return types.PublicUser{}, store.ErrNotFound
	}
	return user.Public(), nil
}
