package models

// EmailSettings are the per-user notification preferences. The
// orchestrator consults them before dispatching any email; in-app
// notifications are always written.
type EmailSettings struct {
	BaseModel
	UserID            string `gorm:"uniqueIndex;not null" json:"user_id"`
	CriticalAlerts    bool   `gorm:"default:true" json:"critical_alerts"`
	MaintenanceAlerts bool   `gorm:"default:true" json:"maintenance_alerts"`
	WeeklyReports     bool   `gorm:"default:true" json:"weekly_reports"`
	OverrideEmail     string `json:"override_email"` // optional, falls back to profile email
}
