// AngelaMos | 2026
// dto.go

package auth

import (
	"strings"
	"time"
)

// RegisterRequest only admits student and admin. super_admin accounts
// come from startup seeding.
type RegisterRequest struct {
	Username     string `json:"username"      validate:"required,min=3,max=64"`
	Name         string `json:"name"          validate:"required,min=1,max=100"`
	Email        string `json:"email"         validate:"required,email,max=255"`
	Password     string `json:"password"      validate:"required,min=8,max=128"`
	Role         string `json:"role"          validate:"required,oneof=student admin"`
	UniversityID string `json:"university_id" validate:"required,uuid"`
}

func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	r.UniversityID = strings.TrimSpace(r.UniversityID)
}

// LoginRequest accepts either a username or an email in Username.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

func (r *LoginRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

type UserResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	UniversityID string    `json:"university_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type RegisterResponse struct {
	ID        string       `json:"id"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type LoginResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int          `json:"expires_in"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func toUserResponse(u *UserInfo) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		UniversityID: u.UniversityID,
		CreatedAt:    u.CreatedAt,
	}
}
