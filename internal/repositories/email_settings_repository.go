package repositories

import (
	"errors"

	"floodguard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrEmailSettingsNotFound = errors.New("email settings not found")

type EmailSettingsRepository interface {
	Create(settings *models.EmailSettings) error
	FindByUserID(userID string) (*models.EmailSettings, error)
	Update(settings *models.EmailSettings) error
}

type EmailSettingsRepositoryImpl struct {
	db *gorm.DB
}

func NewEmailSettingsRepository(db *gorm.DB) EmailSettingsRepository {
	return &EmailSettingsRepositoryImpl{db: db}
}

func (r *EmailSettingsRepositoryImpl) Create(settings *models.EmailSettings) error {
	return r.db.Create(settings).Error
}

func (r *EmailSettingsRepositoryImpl) FindByUserID(userID string) (*models.EmailSettings, error) {
	var settings models.EmailSettings
	err := r.db.First(&settings, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmailSettingsNotFound
		}
		return nil, err
	}
	return &settings, nil
}

func (r *EmailSettingsRepositoryImpl) Update(settings *models.EmailSettings) error {
	return r.db.Save(settings).Error
}
