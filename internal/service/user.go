package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/tradeline/jobtrack/api/internal/model"
)

// UserRepository defines the interface for the operator profile
type UserRepository interface {
	Get(ctx context.Context) (*model.User, error)
	Update(ctx context.Context, user *model.User) (*model.User, error)
}

// UserService handles the single operator profile
type UserService struct {
	repo UserRepository
}

// UserServiceConfig holds configuration for the user service
type UserServiceConfig struct {
	Repo UserRepository
}

// NewUserService creates a new user service
func NewUserService(cfg UserServiceConfig) *UserService {
	return &UserService{repo: cfg.Repo}
}

// GetProfile retrieves the operator profile
func (s *UserService) GetProfile(ctx context.Context) (*model.User, error) {
	user, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies a partial profile update. Omitted fields keep their
// stored value; a new password is bcrypt-hashed before it is persisted.
func (s *UserService) UpdateProfile(ctx context.Context, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return nil, ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}
	return updated, nil
}
