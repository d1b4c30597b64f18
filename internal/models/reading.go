package models

// Reading is one timestamped water-level measurement from a sensor.
type Reading struct {
	BaseModel
	SensorID string  `gorm:"not null;index" json:"sensor_id"`
	Level    float64 `gorm:"not null" json:"level"` // meters
}
