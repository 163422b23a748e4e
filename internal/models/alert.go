package models

import (
	"time"

	"myhealth-server/internal/vitals"
)

// AlertStatus represents the triage state of an alert
type AlertStatus string

const (
	AlertStatusOpen         AlertStatus = "open"
	AlertStatusAcknowledged AlertStatus = "acknowledged"
)

// Alert surfaces a measurement that crossed the escalation thresholds on the
// doctors' triage view. There is at most one alert per measurement.
type Alert struct {
	BaseModel
	MeasurementID  string      `gorm:"size:36;not null;uniqueIndex" json:"measurementId"`
	SubjectID      string      `gorm:"size:36;not null;index" json:"subjectId"`
	Kind           vitals.Kind `gorm:"size:20;not null" json:"type"`
	PrimaryValue   float64     `json:"value1"`
	SecondaryValue *float64    `json:"value2,omitempty"`
	RecordedAt     time.Time   `gorm:"index" json:"date"`
	Status         AlertStatus `gorm:"size:20;not null;default:'open';index" json:"status"`
	AcknowledgedBy *string     `gorm:"size:36" json:"acknowledgedBy,omitempty"`
	AcknowledgedAt *time.Time  `json:"acknowledgedAt,omitempty"`

	// Relations
	Subject *User `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}

// AlertFor copies the reading values of m into an open alert.
func AlertFor(m *Measurement) *Alert {
	return &Alert{
		MeasurementID:  m.ID,
		SubjectID:      m.SubjectID,
		Kind:           m.Kind,
		PrimaryValue:   m.PrimaryValue,
		SecondaryValue: m.SecondaryValue,
		RecordedAt:     m.RecordedAt,
		Status:         AlertStatusOpen,
	}
}
