package domain

import (
	"errors"
	"time"
)

// ApplicationStatus represents the review state of an application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusReviewed ApplicationStatus = "reviewed"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// validTransitions defines the allowed state machine transitions.
// accepted and rejected are terminal.
var validTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPending:  {StatusReviewed, StatusAccepted, StatusRejected},
	StatusReviewed: {StatusAccepted, StatusRejected},
}

var ErrApplicationNotFound = errors.New("application not found")
var ErrAlreadyApplied = errors.New("already applied for this job")
var ErrInvalidStatus = errors.New("invalid application status")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrUploadFailed = errors.New("resume upload failed")
var ErrConsistency = errors.New("application job relation could not be verified")

// ValidStatus reports whether s is one of the accepted statuses.
func ValidStatus(s ApplicationStatus) bool {
	switch s {
	case StatusPending, StatusReviewed, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ResumeRef points at an uploaded resume in blob storage.
type ResumeRef struct {
	FileID      string `json:"file_id" bson:"file_id"`
	FileName    string `json:"file_name" bson:"file_name"`
	ContentType string `json:"content_type" bson:"content_type"`
	Size        int64  `json:"size" bson:"size"`
	URL         string `json:"url" bson:"url"`
}

// Application is a job seeker's submission against a Job.
//
// JobID and ApplicantID are immutable after creation. JobOwnerID is
// denormalized from the Job at creation time so employer-scoped queries do
// not need a relational join. At most one live application exists per
// (JobID, ApplicantID) pair.
type Application struct {
	ID          string            `json:"id" bson:"_id,omitempty"`
	JobID       string            `json:"job_id" bson:"job_id"`
	JobOwnerID  string            `json:"job_owner_id" bson:"job_owner_id"`
	ApplicantID string            `json:"applicant_id" bson:"applicant_id"`
	Status      ApplicationStatus `json:"status" bson:"status"`
	CoverLetter string            `json:"cover_letter,omitempty" bson:"cover_letter,omitempty"`
	Resume      ResumeRef         `json:"resume" bson:"resume"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" bson:"updated_at"`
}
