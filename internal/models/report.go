package models

// Report is a user-filed flood/problem observation, distinct from the
// generated weekly summary email.
type Report struct {
	BaseModel
	UserID      string       `gorm:"not null;index" json:"user_id"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	Latitude    *float64     `json:"latitude"`
	Longitude   *float64     `json:"longitude"`
	Status      ReportStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
}
