package ports

import (
	"context"
	"time"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

// ListJobsFilter carries query parameters for listing jobs.
// OwnerID is set by the service layer when the caller is an employer; empty
// means no ownership filter (job seekers and admins see the full catalog).
type ListJobsFilter struct {
	OwnerID string
	Page    int // 1-based
	Limit   int // max rows per page (capped by the service)
}

// JobPatch carries the mutable fields of a job update. Nil fields are left
// untouched. OwnerID and RequestID are deliberately absent: they are
// immutable after creation.
type JobPatch struct {
	Title           *string
	Description     *string
	Requirements    *string
	Salary          *float64
	Location        *string
	JobType         *domain.JobType
	ExperienceLevel *domain.ExperienceLevel
	CompanyName     *string
	Industry        *string
	ExpiredAt       *time.Time
}

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// FindByRequestID retrieves an existing job created with the given
	// idempotency token, or domain.ErrJobNotFound.
	FindByRequestID(ctx context.Context, requestID string) (*domain.Job, error)
	// List returns a page of jobs matching filter and the total count.
	List(ctx context.Context, filter ListJobsFilter) ([]*domain.Job, int64, error)
	Update(ctx context.Context, id string, patch JobPatch) (*domain.Job, error)
	Delete(ctx context.Context, id string) error
}
