package services

import (
	"errors"

	"floodguard_backend/internal/models"
	"floodguard_backend/internal/repositories"
	"floodguard_backend/internal/services/dto"
)

type SettingsService interface {
	// GetEmailSettings returns the user's preferences, creating the
	// default everything-enabled row on first access.
	GetEmailSettings(userID string) (*dto.EmailSettingsResponse, error)
	UpdateEmailSettings(userID string, req *dto.UpdateEmailSettingsRequest) (*dto.EmailSettingsResponse, error)
}

type settingsService struct {
	settingsRepo repositories.EmailSettingsRepository
}

func NewSettingsService(settingsRepo repositories.EmailSettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) GetEmailSettings(userID string) (*dto.EmailSettingsResponse, error) {
	settings, err := s.loadOrCreate(userID)
	if err != nil {
		return nil, err
	}
	return dto.NewEmailSettingsResponse(settings), nil
}

func (s *settingsService) UpdateEmailSettings(userID string, req *dto.UpdateEmailSettingsRequest) (*dto.EmailSettingsResponse, error) {
	settings, err := s.loadOrCreate(userID)
	if err != nil {
		return nil, err
	}

	if req.CriticalAlerts != nil {
		settings.CriticalAlerts = *req.CriticalAlerts
	}
	if req.MaintenanceAlerts != nil {
		settings.MaintenanceAlerts = *req.MaintenanceAlerts
	}
	if req.WeeklyReports != nil {
		settings.WeeklyReports = *req.WeeklyReports
	}
	if req.OverrideEmail != nil {
		settings.OverrideEmail = *req.OverrideEmail
	}

	if err := s.settingsRepo.Update(settings); err != nil {
		return nil, err
	}
	return dto.NewEmailSettingsResponse(settings), nil
}

func (s *settingsService) loadOrCreate(userID string) (*models.EmailSettings, error) {
	settings, err := s.settingsRepo.FindByUserID(userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, repositories.ErrEmailSettingsNotFound) {
		return nil, err
	}

	settings = &models.EmailSettings{
		UserID:            userID,
		CriticalAlerts:    true,
		MaintenanceAlerts: true,
		WeeklyReports:     true,
	}
	if err := s.settingsRepo.Create(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
