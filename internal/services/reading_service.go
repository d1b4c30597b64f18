package services

import (
	"context"
	"time"

	"floodguard_backend/internal/config"
	"floodguard_backend/internal/logger"
	"floodguard_backend/internal/models"
	"floodguard_backend/internal/repositories"
	"floodguard_backend/internal/services/dto"

	"github.com/jonboulle/clockwork"
)

type ReadingService interface {
	// IngestReading stores a reported water level, refreshes the
	// sensor's last-reading snapshot and raises a critical alert when
	// the level crosses the configured threshold.
	IngestReading(ctx context.Context, req *dto.CreateReadingRequest) (*dto.ReadingResponse, error)

	GetSensorReadings(userID, sensorID string, limit int) ([]*dto.ReadingResponse, error)
	GetSensorStats(userID, sensorID string, since time.Time) (*dto.ReadingStatsResponse, error)
}

type readingService struct {
	readingRepo  repositories.ReadingRepository
	sensorRepo   repositories.SensorRepository
	notification NotificationService
	cfg          *config.Config
	clock        clockwork.Clock
}

func NewReadingService(
	readingRepo repositories.ReadingRepository,
	sensorRepo repositories.SensorRepository,
	notification NotificationService,
	cfg *config.Config,
	clock clockwork.Clock,
) ReadingService {
	return &readingService{
		readingRepo:  readingRepo,
		sensorRepo:   sensorRepo,
		notification: notification,
		cfg:          cfg,
		clock:        clock,
	}
}

func (s *readingService) IngestReading(ctx context.Context, req *dto.CreateReadingRequest) (*dto.ReadingResponse, error) {
	sensor, err := s.sensorRepo.FindByDeviceID(req.DeviceID)
	if err != nil {
		return nil, err
	}

	reading := &models.Reading{
		SensorID: sensor.ID,
		Level:    req.Level,
	}
	if err := s.readingRepo.Create(reading); err != nil {
		return nil, err
	}

	if err := s.sensorRepo.UpdateLastReading(sensor.ID, req.Level, s.clock.Now()); err != nil {
		logger.CtxWarn(ctx, "last reading update failed", "error", err.Error(), "sensor_id", sensor.ID)
	}

	if req.Level >= s.cfg.Alerts.CriticalLevel {
		if err := s.notification.SendCriticalLevelAlert(ctx, sensor.UserID, sensor.ID, sensor.Name, req.Level); err != nil {
			logger.CtxWarn(ctx, "critical alert failed", "error", err.Error(), "sensor_id", sensor.ID)
		}
	}

	return dto.NewReadingResponse(reading), nil
}

func (s *readingService) GetSensorReadings(userID, sensorID string, limit int) ([]*dto.ReadingResponse, error) {
	if err := s.checkOwnership(userID, sensorID); err != nil {
		return nil, err
	}

	readings, err := s.readingRepo.FindBySensor(sensorID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReadingResponse, 0, len(readings))
	for i := range readings {
		out = append(out, dto.NewReadingResponse(&readings[i]))
	}
	return out, nil
}

func (s *readingService) GetSensorStats(userID, sensorID string, since time.Time) (*dto.ReadingStatsResponse, error) {
	if err := s.checkOwnership(userID, sensorID); err != nil {
		return nil, err
	}

	stats, err := s.readingRepo.StatsBySensorSince(sensorID, since)
	if err != nil {
		return nil, err
	}
	return &dto.ReadingStatsResponse{
		Count:    stats.Count,
		AvgLevel: stats.AvgLevel,
		MinLevel: stats.MinLevel,
		MaxLevel: stats.MaxLevel,
	}, nil
}

func (s *readingService) checkOwnership(userID, sensorID string) error {
	sensor, err := s.sensorRepo.FindByID(sensorID)
	if err != nil {
		return err
	}
	if sensor.UserID != userID {
		return repositories.ErrSensorNotFound
	}
	return nil
}
