package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"evcharge/internal/models"
	"evcharge/internal/password"
	"evcharge/internal/repository"
)

var (
	// ErrEmailInUse is returned when registering a duplicate email.
	ErrEmailInUse = errors.New("auth: email already registered")
	// ErrNICInUse is returned when registering a duplicate NIC.
	ErrNICInUse = errors.New("auth: nic already registered")
	// ErrInvalidCredentials represents login failure.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrAccountDeactivated rejects logins on deactivated accounts.
	ErrAccountDeactivated = errors.New("auth: account deactivated")
)

// UserStore defines the storage contract used by AuthService.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByNIC(ctx context.Context, nic string) (*models.User, error)
}

// RegisterInput is the full profile submitted at registration.
type RegisterInput struct {
	NIC         string
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Role        models.UserRole
	StationID   string
	PhoneNumber string
}

// AuthService contains registration and login logic.
type AuthService struct {
	users     UserStore
	hasher    password.Hasher
	tokenizer *TokenService
	logger    *zap.Logger
}

// NewAuthService builds AuthService.
func NewAuthService(users UserStore, hasher password.Hasher, tokenizer *TokenService, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokenizer: tokenizer,
		logger:    logger,
	}
}

// Register creates a new account. Station operators must carry a station
// id; every other role must not.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.NIC = strings.TrimSpace(in.NIC)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	switch {
	case in.NIC == "":
		return nil, errors.New("auth: nic required")
	case in.Email == "":
		return nil, errors.New("auth: email required")
	case len(in.Password) < 6:
		return nil, errors.New("auth: password must be at least 6 characters")
	case !in.Role.Valid():
		return nil, errors.New("auth: unknown role")
	case in.Role == models.RoleStationOperator && strings.TrimSpace(in.StationID) == "":
		return nil, errors.New("auth: station operators need an assigned station")
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByNIC(ctx, in.NIC); err == nil {
		return nil, ErrNICInUse
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	stationID := ""
	if in.Role == models.RoleStationOperator {
		stationID = strings.TrimSpace(in.StationID)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		NIC:          in.NIC,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		StationID:    stationID,
		PhoneNumber:  in.PhoneNumber,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("nic", user.NIC), zap.Int("role", int(user.Role)))
	return user, nil
}

// Login authenticates a user and produces a JWT.
func (s *AuthService) Login(ctx context.Context, email, plaintext string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || plaintext == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.IsActive {
		return "", nil, ErrAccountDeactivated
	}

	if err := s.hasher.Compare(user.PasswordHash, plaintext); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokenizer.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
