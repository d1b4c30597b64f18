package email

import (
	"context"
	"errors"
)

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// ErrDeliveryFailed is the expected transport failure. Callers treat it
// as a boolean outcome, not a fault to propagate.
var ErrDeliveryFailed = errors.New("email delivery failed")

// Sender delivers a rendered email to one recipient.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// WeeklyReportData is the write-once payload assembled at send time for
// one weekly report email.
type WeeklyReportData struct {
	User    ReportUser
	Period  ReportPeriod
	Sensors []SensorSummary
	Summary ReportSummary
	Alerts  []AlertEvent
}

type ReportUser struct {
	Name  string
	Email string
}

type ReportPeriod struct {
	Start string
	End   string
}

// SensorSummary is one row of the per-sensor status table.
type SensorSummary struct {
	Name          string
	Location      string
	Status        string
	ReadingsCount int64
	AvgLevel      float64
	MinLevel      float64
	MaxLevel      float64
}

type ReportSummary struct {
	TotalSensors    int
	ActiveSensors   int
	TotalReadings   int64
	AvgTemperature  float64
	AvgTurbidity    float64
	AvgConductivity float64
}

// AlertEvent is one critical-level event gathered for the report week.
type AlertEvent struct {
	SensorName string
	Level      float64
	Timestamp  string
}
