package handler

import (
	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

func toJobResponse(j *domain.Job) jobResponse {
	return jobResponse{
		ID:              j.ID,
		Title:           j.Title,
		Description:     j.Description,
		Requirements:    j.Requirements,
		Salary:          j.Salary,
		Location:        j.Location,
		JobType:         string(j.JobType),
		ExperienceLevel: string(j.ExperienceLevel),
		CompanyName:     j.CompanyName,
		Industry:        j.Industry,
		ExpiredAt:       j.ExpiredAt,
		OwnerID:         j.OwnerID,
		RequestID:       j.RequestID,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

func toJobPatch(req updateJobRequest) ports.JobPatch {
	patch := ports.JobPatch{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Salary:       req.Salary,
		Location:     req.Location,
		CompanyName:  req.CompanyName,
		Industry:     req.Industry,
	}
	if req.JobType != nil {
		t := domain.JobType(*req.JobType)
		patch.JobType = &t
	}
	if req.ExperienceLevel != nil {
		l := domain.ExperienceLevel(*req.ExperienceLevel)
		patch.ExperienceLevel = &l
	}
	patch.ExpiredAt = req.ExpiredAt
	return patch
}
