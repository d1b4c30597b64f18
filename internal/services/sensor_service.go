package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"floodguard_backend/internal/geo"
	"floodguard_backend/internal/logger"
	"floodguard_backend/internal/models"
	"floodguard_backend/internal/repositories"
	"floodguard_backend/internal/services/dto"
	"floodguard_backend/pkg/apperrors"
)

type SensorService interface {
	CreateSensor(ctx context.Context, userID string, req *dto.CreateSensorRequest) (*dto.SensorResponse, error)
	GetSensor(userID, sensorID string) (*dto.SensorResponse, error)
	GetUserSensors(userID string) ([]*dto.SensorResponse, error)
	UpdateSensor(userID, sensorID string, req *dto.UpdateSensorRequest) (*dto.SensorResponse, error)
	DeleteSensor(userID, sensorID string) error
}

type sensorService struct {
	sensorRepo repositories.SensorRepository
	geocoder   geo.Geocoder
}

func NewSensorService(sensorRepo repositories.SensorRepository, geocoder geo.Geocoder) SensorService {
	return &sensorService{
		sensorRepo: sensorRepo,
		geocoder:   geocoder,
	}
}

func (s *sensorService) CreateSensor(ctx context.Context, userID string, req *dto.CreateSensorRequest) (*dto.SensorResponse, error) {
	if _, err := s.sensorRepo.FindByDeviceID(req.DeviceID); err == nil {
		return nil, apperrors.New(apperrors.CodeAlreadyExists, "sensor",
			"A sensor with this device ID already exists", http.StatusConflict)
	} else if !errors.Is(err, repositories.ErrSensorNotFound) {
		return nil, err
	}

	sensor := &models.Sensor{
		UserID:    userID,
		Name:      req.Name,
		DeviceID:  req.DeviceID,
		Status:    models.SensorStatusActive,
		Location:  req.Location,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	// Resolve coordinates from the location text when the device did
	// not report its own position. Geocoding failures are not fatal,
	// the sensor is simply stored without coordinates.
	if sensor.Latitude == nil && sensor.Longitude == nil && sensor.Location != "" {
		if result, err := s.geocoder.Geocode(ctx, sensor.Location); err == nil {
			sensor.Latitude = &result.Latitude
			sensor.Longitude = &result.Longitude
			sensor.Location = result.FormattedAddress
		} else {
			logger.CtxWarn(ctx, "geocoding failed on sensor create",
				"error", err.Error(), "location", sensor.Location)
		}
	}

	if err := s.sensorRepo.Create(sensor); err != nil {
		return nil, err
	}
	return dto.NewSensorResponse(sensor), nil
}

func (s *sensorService) GetSensor(userID, sensorID string) (*dto.SensorResponse, error) {
	sensor, err := s.ownedSensor(userID, sensorID)
	if err != nil {
		return nil, err
	}
	return dto.NewSensorResponse(sensor), nil
}

func (s *sensorService) GetUserSensors(userID string) ([]*dto.SensorResponse, error) {
	sensors, err := s.sensorRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SensorResponse, 0, len(sensors))
	for i := range sensors {
		out = append(out, dto.NewSensorResponse(&sensors[i]))
	}
	return out, nil
}

func (s *sensorService) UpdateSensor(userID, sensorID string, req *dto.UpdateSensorRequest) (*dto.SensorResponse, error) {
	sensor, err := s.ownedSensor(userID, sensorID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sensor.Name = *req.Name
	}
	if req.Location != nil {
		sensor.Location = *req.Location
	}
	if req.Status != nil {
		status := models.SensorStatus(*req.Status)
		if !models.ValidSensorStatus(status) {
			return nil, apperrors.ErrInvalidStatus("sensor", fmt.Sprintf("invalid sensor status: %s", *req.Status))
		}
		sensor.Status = status
	}
	if req.Latitude != nil {
		sensor.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		sensor.Longitude = req.Longitude
	}

	if err := s.sensorRepo.Update(sensor); err != nil {
		return nil, err
	}
	return dto.NewSensorResponse(sensor), nil
}

func (s *sensorService) DeleteSensor(userID, sensorID string) error {
	if _, err := s.ownedSensor(userID, sensorID); err != nil {
		return err
	}
	return s.sensorRepo.Delete(sensorID)
}

func (s *sensorService) ownedSensor(userID, sensorID string) (*models.Sensor, error) {
	sensor, err := s.sensorRepo.FindByID(sensorID)
	if err != nil {
		return nil, err
	}
	if sensor.UserID != userID {
		return nil, repositories.ErrSensorNotFound
	}
	return sensor, nil
}
