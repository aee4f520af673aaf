package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

type ProfileService struct {
	repo   ports.ProfileRepository
	logger zerolog.Logger
}

func NewProfileService(repo ports.ProfileRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, logger: logger}
}

// CreateProfile creates the caller's profile. Only job seekers may create
// profiles, and each user may have at most one.
func (s *ProfileService) CreateProfile(ctx context.Context, p ports.Principal, input ports.CreateProfileInput) (*domain.Profile, error) {
	if p.Role != domain.RoleJobSeeker {
		return nil, domain.ErrForbidden
	}

	existing, err := s.repo.FindByUserID(ctx, p.ID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrProfileExists
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		UserID:     p.ID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Phone:      input.Phone,
		Skills:     input.Skills,
		Experience: input.Experience,
		Education:  input.Education,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		s.logger.Error().Err(err).Str("user_id", p.ID).Msg("failed to create profile")
		return nil, err
	}

	s.logger.Info().Str("profile_id", profile.ID).Str("user_id", p.ID).Msg("profile created")
	return profile, nil
}

// GetOwnProfile returns the caller's profile.
func (s *ProfileService) GetOwnProfile(ctx context.Context, p ports.Principal) (*domain.Profile, error) {
	return s.repo.FindByUserID(ctx, p.ID)
}

// GetProfile returns a profile by id. Users may only read their own profile;
// admins may read any.
func (s *ProfileService) GetProfile(ctx context.Context, p ports.Principal, profileID string) (*domain.Profile, error) {
	return s.ownedProfile(ctx, p, profileID)
}

// UpdateProfile applies the patch to a profile the caller owns (or any
// profile for admins).
func (s *ProfileService) UpdateProfile(ctx context.Context, p ports.Principal, profileID string, patch ports.ProfilePatch) (*domain.Profile, error) {
	if _, err := s.ownedProfile(ctx, p, profileID); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, profileID, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("profile_id", profileID).Msg("failed to update profile")
		return nil, err
	}

	s.logger.Info().Str("profile_id", profileID).Str("actor_id", p.ID).Msg("profile updated")
	return updated, nil
}

// DeleteProfile removes a profile the caller owns (or any profile for
// admins).
func (s *ProfileService) DeleteProfile(ctx context.Context, p ports.Principal, profileID string) error {
	if _, err := s.ownedProfile(ctx, p, profileID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, profileID); err != nil {
		s.logger.Error().Err(err).Str("profile_id", profileID).Msg("failed to delete profile")
		return err
	}

	s.logger.Info().Str("profile_id", profileID).Str("actor_id", p.ID).Msg("profile deleted")
	return nil
}

// ownedProfile loads the profile and enforces the owner-or-admin rule.
func (s *ProfileService) ownedProfile(ctx context.Context, p ports.Principal, profileID string) (*domain.Profile, error) {
	profile, err := s.repo.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != p.ID && p.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return profile, nil
}
