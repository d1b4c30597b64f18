package models

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

type SensorStatus string

const (
	SensorStatusActive      SensorStatus = "active"
	SensorStatusInactive    SensorStatus = "inactive"
	SensorStatusMaintenance SensorStatus = "maintenance"
)

// ValidSensorStatus reports whether s is a known sensor status.
func ValidSensorStatus(s SensorStatus) bool {
	switch s {
	case SensorStatusActive, SensorStatusInactive, SensorStatusMaintenance:
		return true
	}
	return false
}

type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusVerified ReportStatus = "verified"
	ReportStatusResolved ReportStatus = "resolved"
)

// ValidReportStatus reports whether s is a known report status.
func ValidReportStatus(s ReportStatus) bool {
	switch s {
	case ReportStatusPending, ReportStatusVerified, ReportStatusResolved:
		return true
	}
	return false
}
