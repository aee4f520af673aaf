package domain

import (
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")
var ErrProfileExists = errors.New("profile already exists for this user")

// Profile is a job seeker's public profile. Each user has at most one.
type Profile struct {
	ID         string
	UserID     string
	FirstName  string
	LastName   string
	Phone      string
	Skills     []string
	Experience string
	Education  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
