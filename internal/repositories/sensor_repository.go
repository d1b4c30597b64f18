package repositories

import (
	"errors"
	"time"

	"floodguard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSensorNotFound = errors.New("sensor not found")

type SensorRepository interface {
	Create(sensor *models.Sensor) error
	FindByID(id string) (*models.Sensor, error)
	FindByDeviceID(deviceID string) (*models.Sensor, error)
	FindByUserID(userID string) ([]models.Sensor, error)
	FindByStatus(status models.SensorStatus) ([]models.Sensor, error)
	Update(sensor *models.Sensor) error
	UpdateLastReading(sensorID string, level float64, at time.Time) error
	Delete(id string) error
}

type SensorRepositoryImpl struct {
	db *gorm.DB
}

func NewSensorRepository(db *gorm.DB) SensorRepository {
	return &SensorRepositoryImpl{db: db}
}

func (r *SensorRepositoryImpl) Create(sensor *models.Sensor) error {
	return r.db.Create(sensor).Error
}

func (r *SensorRepositoryImpl) FindByID(id string) (*models.Sensor, error) {
	var sensor models.Sensor
	err := r.db.First(&sensor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSensorNotFound
		}
		return nil, err
	}
	return &sensor, nil
}

func (r *SensorRepositoryImpl) FindByDeviceID(deviceID string) (*models.Sensor, error) {
	var sensor models.Sensor
	err := r.db.First(&sensor, "device_id = ?", deviceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSensorNotFound
		}
		return nil, err
	}
	return &sensor, nil
}

func (r *SensorRepositoryImpl) FindByUserID(userID string) ([]models.Sensor, error) {
	var sensors []models.Sensor
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sensors).Error
	return sensors, err
}

func (r *SensorRepositoryImpl) FindByStatus(status models.SensorStatus) ([]models.Sensor, error) {
	var sensors []models.Sensor
	err := r.db.Where("status = ?", status).
		Order("created_at ASC").
		Find(&sensors).Error
	return sensors, err
}

func (r *SensorRepositoryImpl) Update(sensor *models.Sensor) error {
	return r.db.Save(sensor).Error
}

func (r *SensorRepositoryImpl) UpdateLastReading(sensorID string, level float64, at time.Time) error {
	return r.db.Model(&models.Sensor{}).
		Where("id = ?", sensorID).
		Updates(map[string]interface{}{
			"last_reading":    level,
			"last_reading_at": at,
		}).Error
}

func (r *SensorRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.Sensor{}, "id = ?", id).Error
}
