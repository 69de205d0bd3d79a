package ports

import (
	"context"

	"github.com/99minutos/storefront/internal/core/domain"
)

// RegisterUserInput carries the public registration payload.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string // optional; only validated, never honoured
}

// UserService defines use-case operations for user accounts.
type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	// UpdateRole and Delete reject operations where actor is the target.
	UpdateRole(ctx context.Context, actor *domain.User, id, role string) (*domain.User, error)
	Delete(ctx context.Context, actor *domain.User, id string) (*domain.User, error)
}
