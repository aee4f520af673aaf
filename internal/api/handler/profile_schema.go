package handler

import "time"

// --- Request / Response types ---

type createProfileRequest struct {
	FirstName  string   `json:"first_name" validate:"required"`
	LastName   string   `json:"last_name"  validate:"required"`
	Phone      string   `json:"phone"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Education  string   `json:"education"`
}

// updateProfileRequest intentionally has no user field: a profile cannot be
// reassigned after creation.
type updateProfileRequest struct {
	FirstName  *string   `json:"first_name"`
	LastName   *string   `json:"last_name"`
	Phone      *string   `json:"phone"`
	Skills     *[]string `json:"skills"`
	Experience *string   `json:"experience"`
	Education  *string   `json:"education"`
}

type profileResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      string    `json:"phone"`
	Skills     []string  `json:"skills"`
	Experience string    `json:"experience"`
	Education  string    `json:"education"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type deleteProfileResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
