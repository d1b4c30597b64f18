package services

import (
	"floodguard_backend/internal/geo"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	ProfileService      ProfileService
	SensorService       SensorService
	ReadingService      ReadingService
	ReportService       ReportService
	NotificationService NotificationService
	SettingsService     SettingsService
	Geocoder            geo.Geocoder
}
