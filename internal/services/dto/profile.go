package dto

import (
	"time"

	"floodguard_backend/internal/models"
)

// ---------------- Requests ----------------

type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,max=100"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

// ---------------- Responses ----------------

type ProfileResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EnsureProfileResult reports the outcome of the ensure operation. It is
// returned to the caller even when the profile already existed.
type EnsureProfileResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewProfileResponse(p *models.Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		Email:     p.Email,
		AvatarURL: p.AvatarURL,
		Phone:     p.Phone,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
