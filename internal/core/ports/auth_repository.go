package ports

import (
	"context"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

// AuthRepository defines the interface for user persistence.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIdentifier resolves a login identifier that may be either a
	// username or an email address.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
}
