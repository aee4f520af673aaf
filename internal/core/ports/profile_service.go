package ports

import (
	"context"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

// CreateProfileInput carries all data needed to create a job seeker profile.
type CreateProfileInput struct {
	FirstName  string
	LastName   string
	Phone      string
	Skills     []string
	Experience string
	Education  string
}

// ProfileService defines use-case operations for job seeker profiles.
// A user owns at most one profile; reads and writes beyond the owner are
// admin-only.
type ProfileService interface {
	CreateProfile(ctx context.Context, p Principal, input CreateProfileInput) (*domain.Profile, error)
	// GetOwnProfile returns the caller's profile, or ErrProfileNotFound.
	GetOwnProfile(ctx context.Context, p Principal) (*domain.Profile, error)
	GetProfile(ctx context.Context, p Principal, profileID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, p Principal, profileID string, patch ProfilePatch) (*domain.Profile, error)
	DeleteProfile(ctx context.Context, p Principal, profileID string) error
}
