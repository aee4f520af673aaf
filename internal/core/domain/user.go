package domain

import (
	"errors"
	"strings"
	"time"
)

// Role is the closed set of actor roles. Raw role strings from storage or
// tokens are normalized through ParseRole before any comparison.
type Role string

const (
	RoleJobSeeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

var ErrRoleNotFound = errors.New("role not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// ParseRole normalizes a raw role string to a Role. The stored data is
// inconsistent ("JobSeeker", "Job Seeker", "job-seeker"), so comparison is
// case-insensitive with separators stripped.
func ParseRole(raw string) (Role, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	switch s {
	case "jobseeker":
		return RoleJobSeeker, nil
	case "employer":
		return RoleEmployer, nil
	case "admin", "administrator":
		return RoleAdmin, nil
	}
	return "", ErrRoleNotFound
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
