package dto

import (
	"time"

	"floodguard_backend/internal/models"
)

// ---------------- Requests ----------------

type UpdateEmailSettingsRequest struct {
	CriticalAlerts    *bool   `json:"critical_alerts,omitempty"`
	MaintenanceAlerts *bool   `json:"maintenance_alerts,omitempty"`
	WeeklyReports     *bool   `json:"weekly_reports,omitempty"`
	OverrideEmail     *string `json:"override_email,omitempty" validate:"omitempty,email"`
}

// ---------------- Responses ----------------

type EmailSettingsResponse struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	CriticalAlerts    bool      `json:"critical_alerts"`
	MaintenanceAlerts bool      `json:"maintenance_alerts"`
	WeeklyReports     bool      `json:"weekly_reports"`
	OverrideEmail     string    `json:"override_email,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func NewEmailSettingsResponse(s *models.EmailSettings) *EmailSettingsResponse {
	return &EmailSettingsResponse{
		ID:                s.ID,
		UserID:            s.UserID,
		CriticalAlerts:    s.CriticalAlerts,
		MaintenanceAlerts: s.MaintenanceAlerts,
		WeeklyReports:     s.WeeklyReports,
		OverrideEmail:     s.OverrideEmail,
		UpdatedAt:         s.UpdatedAt,
	}
}
