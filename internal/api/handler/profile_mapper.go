package handler

import (
	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

func toProfileResponse(p *domain.Profile) profileResponse {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return profileResponse{
		ID:         p.ID,
		UserID:     p.UserID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Phone:      p.Phone,
		Skills:     skills,
		Experience: p.Experience,
		Education:  p.Education,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toProfilePatch(req updateProfileRequest) ports.ProfilePatch {
	return ports.ProfilePatch{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Skills:     req.Skills,
		Experience: req.Experience,
		Education:  req.Education,
	}
}
