package ports

import (
	"context"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

// ListApplicationsFilter carries query parameters for listing applications.
// At most one of ApplicantID / JobOwnerID is set by the service layer
// depending on the caller's role; both empty means no scoping (admin).
type ListApplicationsFilter struct {
	ApplicantID string
	JobOwnerID  string
	JobID       string
}

// ApplicationRepository defines persistence operations for applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	// FindByJobAndApplicant returns the live application for the pair, or
	// domain.ErrApplicationNotFound.
	FindByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*domain.Application, error)
	// FindByResumeFileID returns the application holding the given resume
	// file, or domain.ErrApplicationNotFound.
	FindByResumeFileID(ctx context.Context, fileID string) (*domain.Application, error)
	List(ctx context.Context, filter ListApplicationsFilter) ([]*domain.Application, error)
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error)
	UpdateResume(ctx context.Context, id string, resume domain.ResumeRef) (*domain.Application, error)
	// RepairJobRelation re-attaches the job reference on a record whose
	// relation did not persist. See ApplicationService.CreateApplication.
	RepairJobRelation(ctx context.Context, id, jobID, jobOwnerID string) error
	Delete(ctx context.Context, id string) error
}
