package ports

import (
	"context"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

// ProfilePatch carries the mutable fields of a profile update. Nil fields
// are left untouched. UserID is deliberately absent: a profile cannot be
// reassigned.
type ProfilePatch struct {
	FirstName  *string
	LastName   *string
	Phone      *string
	Skills     *[]string
	Experience *string
	Education  *string
}

// ProfileRepository defines persistence operations for job seeker profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	// FindByUserID retrieves the profile owned by the given user, or
	// domain.ErrProfileNotFound.
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, id string, patch ProfilePatch) (*domain.Profile, error)
	Delete(ctx context.Context, id string) error
}
