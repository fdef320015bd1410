// Package service provides authentication and user management business logic,
// delegating persistence to repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atinyakov/FleetKeeper/internal/auth"
	"github.com/atinyakov/FleetKeeper/internal/models"
	"github.com/atinyakov/FleetKeeper/internal/repository"
)

// TokenType is the token_type returned with every access token.
const TokenType = "bearer"

// UserFinder defines the credential lookup required by the authentication service.
type UserFinder interface {
	// GetByUsername returns the stored principal with its password hash.
	// Returns repository.ErrNotFound if no user has that exact username.
	GetByUsername(ctx context.Context, username string) (*models.UserCredentials, error)
}

// AuthService verifies credentials, issues access tokens and resolves them
// back to principals. It holds no mutable state.
type AuthService struct {
	users  UserFinder
	tokens *auth.TokenManager
	hasher *auth.PasswordHasher
	ttl    time.Duration
}

// NewAuthService constructs an AuthService. ttl is the lifetime of tokens
// issued by Login.
func NewAuthService(users UserFinder, tokens *auth.TokenManager, hasher *auth.PasswordHasher, ttl time.Duration) *AuthService {
	return &AuthService{users: users, tokens: tokens, hasher: hasher, ttl: ttl}
}

// Authenticate checks username and password against the stored hash.
// Unknown usernames and wrong passwords both yield auth.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	creds, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		s.hasher.Burn(password)
		return nil, auth.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if err := s.hasher.Verify(creds.PasswordHash, password); err != nil {
		return nil, err
	}
	user := creds.User
	return &user, nil
}

// IssueToken signs a token for username valid for ttl.
func (s *AuthService) IssueToken(username string, ttl time.Duration) (string, time.Time, error) {
	return s.tokens.Issue(username, ttl)
}

// ResolveToken validates the token and re-fetches its subject.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	username, err := s.tokens.Subject(token)
	if err != nil {
		return nil, err
	}

	creds, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, auth.ErrPrincipalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve token: %w", err)
	}
	user := creds.User
	return &user, nil
}

// Login authenticates and returns a bearer token with the configured lifetime.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Token, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	token, _, err := s.IssueToken(user.Username, s.ttl)
	if err != nil {
		return nil, err
	}
	return &models.Token{AccessToken: token, TokenType: TokenType}, nil
}
