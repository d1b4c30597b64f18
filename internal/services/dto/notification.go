package dto

import (
	"time"

	"floodguard_backend/internal/models"
)

// ---------------- Requests ----------------

type CreateNotificationRequest struct {
	Type      string                 `json:"type" validate:"required,oneof=info warning error success"`
	Category  string                 `json:"category" validate:"required,oneof=alert maintenance report system"`
	Title     string                 `json:"title" validate:"required,max=150"`
	Message   string                 `json:"message" validate:"omitempty,max=1000"`
	ActionURL string                 `json:"action_url,omitempty" validate:"omitempty,max=500"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

type TriggerCriticalAlertRequest struct {
	SensorID   string  `json:"sensor_id" validate:"required"`
	SensorName string  `json:"sensor_name" validate:"required,max=100"`
	Level      float64 `json:"level" validate:"required,gte=0"`
}

type TriggerMaintenanceAlertRequest struct {
	SensorID   string `json:"sensor_id" validate:"required"`
	SensorName string `json:"sensor_name" validate:"required,max=100"`
	Reason     string `json:"reason" validate:"required,max=300"`
}

type ListNotificationsRequest struct {
	UnreadOnly bool   `form:"unread_only"`
	Category   string `form:"category" validate:"omitempty,oneof=alert maintenance report system"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// ---------------- Responses ----------------

type NotificationResponse struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Type      string                 `json:"type"`
	Category  string                 `json:"category"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message,omitempty"`
	ActionURL string                 `json:"action_url,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	Total         int64                   `json:"total"`
	Page          int                     `json:"page"`
	PageSize      int                     `json:"page_size"`
	TotalPages    int                     `json:"total_pages"`
}

type NotificationStatsResponse struct {
	Total       int64            `json:"total"`
	UnreadCount int64            `json:"unread_count"`
	ByCategory  map[string]int64 `json:"by_category"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

func NewNotificationResponse(n *models.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      string(n.Type),
		Category:  string(n.Category),
		Title:     n.Title,
		Message:   n.Message,
		ActionURL: n.ActionURL,
		Data:      n.DataMap(),
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
