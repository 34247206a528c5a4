package handler

import "time"

// --- Request / Response types ---

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,emailaddr"`
	Type     string `json:"type" validate:"required,oneof=admin user"`
	Password string `json:"password" validate:"required"`
}

// updateUserRequest is a partial update: absent fields stay nil. Field checks
// run in the service so that permission errors win over validation errors.
type updateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Type     *string `json:"type,omitempty"`
	Password *string `json:"password,omitempty"`
}

// userResponse is the sanitized user: every field except the password hash.
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}
