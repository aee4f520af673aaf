package ports

import (
	"context"
	"io"
	"time"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

// ResumeUpload carries an inbound resume file from the transport layer.
type ResumeUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// CreateApplicationInput carries all data needed to submit an application.
type CreateApplicationInput struct {
	JobID       string
	CoverLetter string
	Resume      ResumeUpload
}

// JobSummary is the denormalized job data attached to application views for
// display.
type JobSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CompanyName string    `json:"company_name"`
	Location    string    `json:"location"`
	ExpiredAt   time.Time `json:"expired_at"`
}

// ApplicationView is an application joined with its job summary.
type ApplicationView struct {
	Application *domain.Application
	Job         *JobSummary // nil only when the job no longer exists
}

// ApplicationService defines use-case operations for applications.
type ApplicationService interface {
	CreateApplication(ctx context.Context, p Principal, input CreateApplicationInput) (*domain.Application, error)
	ListApplications(ctx context.Context, p Principal) ([]*ApplicationView, error)
	GetApplication(ctx context.Context, p Principal, id string) (*ApplicationView, error)
	UpdateStatus(ctx context.Context, p Principal, id string, status string) (*domain.Application, error)
	UpdateResume(ctx context.Context, p Principal, id string, resume ResumeUpload) (*domain.Application, error)
	DeleteApplication(ctx context.Context, p Principal, id string) error
	// OpenResume streams a stored resume after checking the caller may see
	// the application it belongs to.
	OpenResume(ctx context.Context, p Principal, fileID string, w io.Writer) (*domain.ResumeRef, error)
}
