package dto

import (
	"time"

	"floodguard_backend/internal/models"
)

// ---------------- Requests ----------------

type CreateSensorRequest struct {
	Name      string   `json:"name" validate:"required,max=100"`
	DeviceID  string   `json:"device_id" validate:"required,max=100"`
	Location  string   `json:"location" validate:"omitempty,max=200"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

type UpdateSensorRequest struct {
	Name      *string  `json:"name,omitempty" validate:"omitempty,max=100"`
	Location  *string  `json:"location,omitempty" validate:"omitempty,max=200"`
	Status    *string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive maintenance"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

// ---------------- Responses ----------------

type SensorResponse struct {
	ID            string              `json:"id"`
	UserID        string              `json:"user_id"`
	Name          string              `json:"name"`
	DeviceID      string              `json:"device_id"`
	Status        models.SensorStatus `json:"status"`
	Location      string              `json:"location,omitempty"`
	Latitude      *float64            `json:"latitude,omitempty"`
	Longitude     *float64            `json:"longitude,omitempty"`
	LastReading   *float64            `json:"last_reading,omitempty"`
	LastReadingAt *time.Time          `json:"last_reading_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func NewSensorResponse(s *models.Sensor) *SensorResponse {
	return &SensorResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		Name:          s.Name,
		DeviceID:      s.DeviceID,
		Status:        s.Status,
		Location:      s.Location,
		Latitude:      s.Latitude,
		Longitude:     s.Longitude,
		LastReading:   s.LastReading,
		LastReadingAt: s.LastReadingAt,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func NewSensorListResponse(sensors []*models.Sensor) []*SensorResponse {
	out := make([]*SensorResponse, 0, len(sensors))
	for _, s := range sensors {
		out = append(out, NewSensorResponse(s))
	}
	return out
}
