package dto

import (
	"time"

	"floodguard_backend/internal/models"
)

// ---------------- Requests ----------------

type CreateReadingRequest struct {
	DeviceID string  `json:"device_id" validate:"required"`
	Level    float64 `json:"level" validate:"required,gte=0"`
}

// ---------------- Responses ----------------

type ReadingResponse struct {
	ID        string    `json:"id"`
	SensorID  string    `json:"sensor_id"`
	Level     float64   `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

type ReadingStatsResponse struct {
	Count    int64   `json:"count"`
	AvgLevel float64 `json:"avg_level"`
	MinLevel float64 `json:"min_level"`
	MaxLevel float64 `json:"max_level"`
}

func NewReadingResponse(r *models.Reading) *ReadingResponse {
	return &ReadingResponse{
		ID:        r.ID,
		SensorID:  r.SensorID,
		Level:     r.Level,
		CreatedAt: r.CreatedAt,
	}
}

func NewReadingListResponse(readings []*models.Reading) []*ReadingResponse {
	out := make([]*ReadingResponse, 0, len(readings))
	for _, r := range readings {
		out = append(out, NewReadingResponse(r))
	}
	return out
}
