package model

import "time"

// User is the single operator profile for this deployment. Multi-tenant
// accounts are out of scope; there is exactly one profile record.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	UpdatedOn    time.Time `json:"updated_on"`
}

// UpdateUserRequest is the payload for PUT /api/user
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty"`
}
