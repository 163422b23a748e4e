package models

import (
	"time"

	"myhealth-server/internal/agenda"
)

// Appointment is a doctor's time slot. It is a free slot until a patient
// claims it; the doctor stays the owner of the row for its whole life.
type Appointment struct {
	BaseModel
	DoctorID        string        `gorm:"size:36;not null;index" json:"doctorId"`
	PatientID       *string       `gorm:"size:36;index" json:"patientId,omitempty"`
	StartTime       time.Time     `gorm:"not null;index" json:"startTime"`
	EndTime         time.Time     `gorm:"not null" json:"endTime"`
	DurationMinutes int           `gorm:"not null;default:30" json:"duration"`
	Kind            agenda.Kind   `gorm:"size:20;not null;default:'cabinet'" json:"type"`
	Status          agenda.Status `gorm:"size:20;not null;default:'free';index" json:"status"`
	VideoLink       string        `gorm:"size:255" json:"videoLink,omitempty"`
	Notes           string        `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Doctor  *User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

// IsVideo reports whether the consultation happens over video.
func (a *Appointment) IsVideo() bool {
	return a.Kind == agenda.KindVideo
}

// IsPast reports whether the appointment started before now.
func (a *Appointment) IsPast(now time.Time) bool {
	return a.StartTime.Before(now)
}

// IsOwnedBy reports whether doctorID created the slot.
func (a *Appointment) IsOwnedBy(doctorID string) bool {
	return a.DoctorID == doctorID
}

// IsBookedBy reports whether patientID holds the booking.
func (a *Appointment) IsBookedBy(patientID string) bool {
	return a.PatientID != nil && *a.PatientID == patientID
}
