package repositories

import (
	"time"

	"floodguard_backend/internal/models"

	"gorm.io/gorm"
)

// SensorReadingStats aggregates a sensor's readings over a window, for
// the weekly report.
type SensorReadingStats struct {
	Count    int64
	AvgLevel float64
	MinLevel float64
	MaxLevel float64
}

type ReadingRepository interface {
	Create(reading *models.Reading) error
	FindBySensorSince(sensorID string, since time.Time) ([]models.Reading, error)
	FindBySensor(sensorID string, limit int) ([]models.Reading, error)
	CountBySensorSince(sensorID string, since time.Time) (int64, error)
	StatsBySensorSince(sensorID string, since time.Time) (*SensorReadingStats, error)
	FindAboveLevelForSensorsSince(sensorIDs []string, level float64, since time.Time) ([]models.Reading, error)
}

type ReadingRepositoryImpl struct {
	db *gorm.DB
}

func NewReadingRepository(db *gorm.DB) ReadingRepository {
	return &ReadingRepositoryImpl{db: db}
}

func (r *ReadingRepositoryImpl) Create(reading *models.Reading) error {
	return r.db.Create(reading).Error
}

func (r *ReadingRepositoryImpl) FindBySensorSince(sensorID string, since time.Time) ([]models.Reading, error) {
	var readings []models.Reading
	err := r.db.Where("sensor_id = ? AND created_at >= ?", sensorID, since).
		Order("created_at ASC").
		Find(&readings).Error
	return readings, err
}

func (r *ReadingRepositoryImpl) FindBySensor(sensorID string, limit int) ([]models.Reading, error) {
	var readings []models.Reading
	query := r.db.Where("sensor_id = ?", sensorID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&readings).Error
	return readings, err
}

func (r *ReadingRepositoryImpl) CountBySensorSince(sensorID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Reading{}).
		Where("sensor_id = ? AND created_at >= ?", sensorID, since).
		Count(&count).Error
	return count, err
}

func (r *ReadingRepositoryImpl) StatsBySensorSince(sensorID string, since time.Time) (*SensorReadingStats, error) {
	var stats SensorReadingStats
	err := r.db.Model(&models.Reading{}).
		Select("COUNT(*) AS count, COALESCE(AVG(level), 0) AS avg_level, COALESCE(MIN(level), 0) AS min_level, COALESCE(MAX(level), 0) AS max_level").
		Where("sensor_id = ? AND created_at >= ?", sensorID, since).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *ReadingRepositoryImpl) FindAboveLevelForSensorsSince(sensorIDs []string, level float64, since time.Time) ([]models.Reading, error) {
	if len(sensorIDs) == 0 {
		return nil, nil
	}
	var readings []models.Reading
	err := r.db.Where("sensor_id IN ? AND level >= ? AND created_at >= ?", sensorIDs, level, since).
		Order("created_at DESC").
		Find(&readings).Error
	return readings, err
}
