package ports

import (
	"context"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password, role string) (*domain.User, error)
	// Login accepts a username or email as identifier and returns a signed
	// token plus the authenticated user.
	Login(ctx context.Context, identifier, password string) (string, *domain.User, error)
	// Me returns the user for an already-authenticated principal id.
	Me(ctx context.Context, userID string) (*domain.User, error)
}
