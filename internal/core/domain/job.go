package domain

import (
	"errors"
	"time"
)

// JobType classifies the employment arrangement of a posting.
type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

// ExperienceLevel classifies the seniority a posting targets.
type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceLead      ExperienceLevel = "lead"
	ExperienceExecutive ExperienceLevel = "executive"
)

var ErrJobNotFound = errors.New("job not found")
var ErrForbidden = errors.New("access forbidden")
var ErrValidation = errors.New("validation failed")

// ErrDuplicateRequest marks a create whose request id is reserved by an
// earlier request whose job is not yet visible in the store.
var ErrDuplicateRequest = errors.New("duplicate request")

// Defaults applied at creation when the employer leaves the field empty.
const (
	DefaultRequirements = "No specific requirements"
	DefaultIndustry     = "Technology"
)

// ValidJobType reports whether t is one of the accepted job types.
func ValidJobType(t JobType) bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	}
	return false
}

// ValidExperienceLevel reports whether l is one of the accepted levels.
func ValidExperienceLevel(l ExperienceLevel) bool {
	switch l {
	case ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceLead, ExperienceExecutive:
		return true
	}
	return false
}

// Job is a posting created and owned by an Employer.
//
// OwnerID is immutable after creation. RequestID is the idempotency token
// used to collapse duplicate create submissions; it is unique among live jobs.
type Job struct {
	ID              string          `json:"id" bson:"_id,omitempty"`
	Title           string          `json:"title" bson:"title"`
	Description     string          `json:"description" bson:"description"`
	Requirements    string          `json:"requirements" bson:"requirements"`
	Salary          float64         `json:"salary" bson:"salary"`
	Location        string          `json:"location" bson:"location"`
	JobType         JobType         `json:"job_type" bson:"job_type"`
	ExperienceLevel ExperienceLevel `json:"experience_level" bson:"experience_level"`
	CompanyName     string          `json:"company_name" bson:"company_name"`
	Industry        string          `json:"industry" bson:"industry"`
	ExpiredAt       time.Time       `json:"expired_at" bson:"expired_at"`
	OwnerID         string          `json:"owner_id" bson:"owner_id"`
	RequestID       string          `json:"request_id,omitempty" bson:"request_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" bson:"updated_at"`
}
