package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// NotificationType is the severity shown by the UI.
type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeError   NotificationType = "error"
	NotificationTypeSuccess NotificationType = "success"
)

// NotificationCategory groups notifications for the UI filter views.
// The category is fixed per orchestrator entry point; the dashboard
// relies on it being consistent for every row.
type NotificationCategory string

const (
	NotificationCategoryAlert       NotificationCategory = "alert"
	NotificationCategoryMaintenance NotificationCategory = "maintenance"
	NotificationCategoryReport      NotificationCategory = "report"
	NotificationCategorySystem      NotificationCategory = "system"
)

// ValidNotificationType reports whether t is a known severity.
func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationTypeInfo, NotificationTypeWarning, NotificationTypeError, NotificationTypeSuccess:
		return true
	}
	return false
}

// ValidNotificationCategory reports whether c is a known category.
func ValidNotificationCategory(c NotificationCategory) bool {
	switch c {
	case NotificationCategoryAlert, NotificationCategoryMaintenance, NotificationCategoryReport, NotificationCategorySystem:
		return true
	}
	return false
}

type Notification struct {
	BaseModel
	UserID    string               `gorm:"not null;index" json:"user_id"`
	Type      NotificationType     `gorm:"type:varchar(20);not null" json:"type"`
	Category  NotificationCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Title     string               `gorm:"not null" json:"title"`
	Message   string               `json:"message"`
	ActionURL string               `json:"action_url"`
	Data      datatypes.JSON       `gorm:"type:jsonb" json:"data,omitempty"` // {"sensor_id": "...", "level": 2.8}
	IsRead    bool                 `gorm:"default:false" json:"read"`
	ReadAt    *time.Time           `json:"read_at,omitempty"`
}

// DataMap decodes the jsonb payload. Returns nil when empty or invalid.
func (n *Notification) DataMap() map[string]interface{} {
	if len(n.Data) == 0 {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(n.Data, &m); err != nil {
		return nil
	}
	return m
}
