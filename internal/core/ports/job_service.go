package ports

import (
	"context"
	"time"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

// Principal identifies the authenticated actor making a request. The role is
// already normalized by the transport layer; services never see raw role
// strings.
type Principal struct {
	ID   string
	Role domain.Role
}

// CreateJobInput carries all data needed to create a new job posting.
type CreateJobInput struct {
	Title           string
	Description     string
	Requirements    string
	Salary          float64
	Location        string
	JobType         string
	ExperienceLevel string
	CompanyName     string
	Industry        string
	ExpiredAt       time.Time
	// RequestID is the caller-supplied idempotency token. When empty the
	// service generates one.
	RequestID string
}

// CreateJobResult is returned by CreateJob.
type CreateJobResult struct {
	Job *domain.Job
	// AlreadyExisted is true when the request id matched an existing job and
	// no new record was created.
	AlreadyExisted bool
}

// ListJobsInput carries parameters for the list endpoint.
type ListJobsInput struct {
	Page  int
	Limit int
}

// ListJobsResult is returned by ListJobs.
type ListJobsResult struct {
	Items      []*domain.Job
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// JobService defines use-case operations for job postings.
type JobService interface {
	CreateJob(ctx context.Context, p Principal, input CreateJobInput) (*CreateJobResult, error)
	ListJobs(ctx context.Context, p Principal, input ListJobsInput) (*ListJobsResult, error)
	GetJob(ctx context.Context, p Principal, jobID string) (*domain.Job, error)
	UpdateJob(ctx context.Context, p Principal, jobID string, patch JobPatch) (*domain.Job, error)
	// DeleteJob removes the job and all applications referencing it. Any
	// dependent deletion failure aborts the whole operation with the job
	// left intact.
	DeleteJob(ctx context.Context, p Principal, jobID string) error
}
