package models

// Profile is the dashboard-facing identity row created after signup.
// It is intentionally separate from User: the ensure-profile flow can
// run (and retry) long after the auth record exists.
type Profile struct {
	BaseModel
	UserID    string `gorm:"uniqueIndex;not null" json:"user_id"`
	Name      string `gorm:"not null" json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Phone     string `json:"phone"`
}
