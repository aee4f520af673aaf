package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// updateApplicationStatusRequest carries the target status for a review
// transition. It is the only mutable field an employer may touch.
type updateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed accepted rejected"`
}

type resumeResponse struct {
	FileID      string `json:"file_id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
}

type jobSummaryResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CompanyName string    `json:"company_name"`
	Location    string    `json:"location"`
	ExpiredAt   time.Time `json:"expired_at"`
}

type applicationResponse struct {
	ID          string              `json:"id"`
	JobID       string              `json:"job_id"`
	ApplicantID string              `json:"applicant_id"`
	Status      string              `json:"status"`
	CoverLetter string              `json:"cover_letter,omitempty"`
	Resume      resumeResponse      `json:"resume"`
	Job         *jobSummaryResponse `json:"job,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type listApplicationsResponse struct {
	Data []applicationResponse `json:"data"`
}

type deleteApplicationResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
