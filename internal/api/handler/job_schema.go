package handler

import "time"

// --- Request / Response types ---

type createJobRequest struct {
	Title           string    `json:"title"            validate:"required"`
	Description     string    `json:"description"      validate:"required"`
	Requirements    string    `json:"requirements"`
	Salary          float64   `json:"salary"           validate:"required,gt=0"`
	Location        string    `json:"location"         validate:"required"`
	JobType         string    `json:"job_type"         validate:"required,oneof=full-time part-time contract internship"`
	ExperienceLevel string    `json:"experience_level" validate:"required,oneof=entry mid senior lead executive"`
	CompanyName     string    `json:"company_name"     validate:"required"`
	Industry        string    `json:"industry"`
	ExpiredAt       time.Time `json:"expired_at"       validate:"required"`
	// RequestID is the optional idempotency token; generated when absent.
	RequestID string `json:"request_id"`
}

// updateJobRequest intentionally has no owner or request id field: both are
// immutable after creation.
type updateJobRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Requirements    *string    `json:"requirements"`
	Salary          *float64   `json:"salary"           validate:"omitempty,gt=0"`
	Location        *string    `json:"location"`
	JobType         *string    `json:"job_type"         validate:"omitempty,oneof=full-time part-time contract internship"`
	ExperienceLevel *string    `json:"experience_level" validate:"omitempty,oneof=entry mid senior lead executive"`
	CompanyName     *string    `json:"company_name"`
	Industry        *string    `json:"industry"`
	ExpiredAt       *time.Time `json:"expired_at"`
}

type jobResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Requirements    string    `json:"requirements"`
	Salary          float64   `json:"salary"`
	Location        string    `json:"location"`
	JobType         string    `json:"job_type"`
	ExperienceLevel string    `json:"experience_level"`
	CompanyName     string    `json:"company_name"`
	Industry        string    `json:"industry"`
	ExpiredAt       time.Time `json:"expired_at"`
	OwnerID         string    `json:"owner_id"`
	RequestID       string    `json:"request_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listJobsResponse struct {
	Data       []jobResponse      `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type deleteJobResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
