package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/pkg/metrics"
)

type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Register creates a customer account. A role in the payload is validated
// but never honoured: self-registration cannot grant admin access.
func (s *UserService) Register(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	switch {
	case name == "":
		return nil, fmt.Errorf("%w: missing name", domain.ErrInvalidInput)
	case email == "":
		return nil, fmt.Errorf("%w: missing email", domain.ErrInvalidInput)
	case in.Password == "":
		return nil, fmt.Errorf("%w: missing password", domain.ErrInvalidInput)
	case len(in.Password) < domain.MinPasswordLength:
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, domain.MinPasswordLength)
	case len(in.Password) > domain.MaxPasswordBytes:
		return nil, errPasswordTooLong
	case in.Role != "" && !domain.ValidRole(in.Role):
		return nil, fmt.Errorf("%w: unknown role", domain.ErrInvalidInput)
	}

	created, err := s.create(ctx, name, email, in.Password, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}

	metrics.UsersRegisteredTotal.Inc()
	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// EnsureAdmin creates an admin account unless the email is already taken.
// The boolean result reports whether a new account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) (*domain.User, bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, false, fmt.Errorf("%w: admin email and password are required", domain.ErrInvalidInput)
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, fmt.Errorf("ensure admin: %w", err)
	}

	if strings.TrimSpace(name) == "" {
		name = "Admin"
	}
	created, err := s.create(ctx, strings.TrimSpace(name), email, password, domain.RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	s.logger.Info().Str("user_id", created.ID).Msg("admin account created")
	return created, true, nil
}

// Import stores an account with an explicit role. It backs fixture loading
// and skips the registration rules other than role and email uniqueness.
func (s *UserService) Import(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}
	return s.create(ctx, strings.TrimSpace(name), email, password, role)
}

var errPasswordTooLong = fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, domain.MaxPasswordBytes)

func (s *UserService) create(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	if len(password) > domain.MaxPasswordBytes {
		return nil, errPasswordTooLong
	}
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailInUse
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateRole changes the role of another user.
func (s *UserService) UpdateRole(ctx context.Context, actor *domain.User, id, role string) (*domain.User, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if actor != nil && actor.ID == id {
		return nil, domain.ErrSelfModification
	}
	if role == "" {
		return nil, fmt.Errorf("%w: missing role", domain.ErrInvalidInput)
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role", domain.ErrInvalidInput)
	}

	updated, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Str("role", role).Msg("user role updated")
	return updated, nil
}

// Delete removes another user and returns the deleted record.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor != nil && actor.ID == id {
		return nil, domain.ErrSelfModification
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
