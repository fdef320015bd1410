package service

import (
	"context"

	"github.com/atinyakov/FleetKeeper/internal/auth"
	"github.com/atinyakov/FleetKeeper/internal/models"
)

// UserRepository defines the persistence operations required by UserService.
type UserRepository interface {
	Create(ctx context.Context, u models.User, passwordHash string) (*models.User, error)
	List(ctx context.Context, page models.Page) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, patch models.UserPatch, passwordHash *string) (*models.User, error)
	Delete(ctx context.Context, id int64) (*models.User, error)
}

// UserService manages user accounts. Plaintext passwords are hashed here and
// never reach the repository.
type UserService struct {
	repo   UserRepository
	hasher *auth.PasswordHasher
}

// NewUserService constructs a UserService.
func NewUserService(repo UserRepository, hasher *auth.PasswordHasher) *UserService {
	return &UserService{repo: repo, hasher: hasher}
}

// Create hashes the password and stores the account.
func (s *UserService) Create(ctx context.Context, in models.UserCreate) (*models.User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in.Profile(), hash)
}

func (s *UserService) List(ctx context.Context, page models.Page) ([]models.User, error) {
	return s.repo.List(ctx, page)
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.Get(ctx, id)
}

// Update applies patch; a present password is rehashed.
func (s *UserService) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	var hash *string
	if patch.Password != nil {
		h, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		hash = &h
	}
	return s.repo.Update(ctx, id, patch, hash)
}

func (s *UserService) Delete(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.Delete(ctx, id)
}
