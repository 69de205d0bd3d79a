package ports

import (
	"context"

	"github.com/99minutos/storefront/internal/core/domain"
)

// AuthService resolves request credentials to a stored user.
type AuthService interface {
	// Authenticate checks an email/password pair (HTTP Basic credentials).
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	// IssueToken signs a bearer token for an already authenticated user.
	IssueToken(user *domain.User) (string, error)
	// AuthenticateToken validates a bearer token and loads its user.
	AuthenticateToken(ctx context.Context, token string) (*domain.User, error)
}
