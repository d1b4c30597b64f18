package models

import "time"

// Sensor is a registered water-level monitoring device.
type Sensor struct {
	BaseModel
	UserID        string       `gorm:"not null;index" json:"user_id"`
	Name          string       `gorm:"not null" json:"name"`
	DeviceID      string       `gorm:"uniqueIndex;not null" json:"device_id"`
	Status        SensorStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	Location      string       `json:"location"`
	Latitude      *float64     `json:"latitude"`
	Longitude     *float64     `json:"longitude"`
	LastReading   *float64     `json:"last_reading"`
	LastReadingAt *time.Time   `json:"last_reading_at"`

	// Relations
	Readings []Reading `gorm:"foreignKey:SensorID" json:"-"`
}
