package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"evcharge/internal/models"
	"evcharge/internal/password"
	"evcharge/internal/repository"
)

// ProfileUpdate carries the mutable profile fields; empty strings leave
// the stored value unchanged.
type ProfileUpdate struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Password    string
}

// UserService manages profiles and account state.
type UserService struct {
	users  *repository.UserRepository
	hasher password.Hasher
	logger *zap.Logger
}

// NewUserService builds UserService.
func NewUserService(users *repository.UserRepository, hasher password.Hasher, logger *zap.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, logger: logger}
}

// Get returns one account by NIC.
func (s *UserService) Get(ctx context.Context, nic string) (*models.User, error) {
	return s.users.GetByNIC(ctx, nic)
}

// Update applies a profile update to the caller's own account.
func (s *UserService) Update(ctx context.Context, nic string, update ProfileUpdate) (*models.User, error) {
	user, err := s.users.GetByNIC(ctx, nic)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(update.FirstName); v != "" {
		user.FirstName = v
	}
	if v := strings.TrimSpace(update.LastName); v != "" {
		user.LastName = v
	}
	if v := strings.TrimSpace(update.PhoneNumber); v != "" {
		user.PhoneNumber = v
	}
	if update.Password != "" {
		hash, err := s.hasher.Hash(update.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("profile updated", zap.String("nic", nic))
	return user, nil
}

// Deactivate disables the caller's account. Existing tokens keep their
// expiry but logins are refused from here on.
func (s *UserService) Deactivate(ctx context.Context, nic string) error {
	if err := s.users.SetActive(ctx, nic, false); err != nil {
		return err
	}
	s.logger.Info("account deactivated", zap.String("nic", nic))
	return nil
}

// List returns every account (back-office view).
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}
