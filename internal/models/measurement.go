package models

import (
	"math"
	"time"

	"myhealth-server/internal/apperr"
	"myhealth-server/internal/vitals"
)

// Measurement is a single vital-sign reading of a subject.
// PrimaryValue is systolic, glucose or weight; SecondaryValue is diastolic
// and only set for blood pressure.
type Measurement struct {
	BaseModel
	SubjectID      string      `gorm:"size:36;not null;index:idx_subject_kind_recorded,priority:1" json:"subjectId"`
	Kind           vitals.Kind `gorm:"size:20;not null;index:idx_subject_kind_recorded,priority:2" json:"type"`
	PrimaryValue   float64     `gorm:"not null" json:"value1"`
	SecondaryValue *float64    `json:"value2,omitempty"`
	Unit           string      `gorm:"size:20;not null" json:"unit"`
	RecordedAt     time.Time   `gorm:"not null;index:idx_subject_kind_recorded,priority:3" json:"date"`
	Notes          string      `gorm:"type:text" json:"notes,omitempty"`

	Subject *User `gorm:"foreignKey:SubjectID" json:"-"`
}

// NewMeasurement builds a reading and checks its invariants: a known kind,
// finite positive values and a secondary value only for blood pressure.
func NewMeasurement(subjectID string, kind vitals.Kind, primary float64, secondary *float64, notes string, recordedAt time.Time) (*Measurement, error) {
	if !kind.Valid() {
		return nil, apperr.ErrInvalidKind.WithMessage(string(kind))
	}
	if !validValue(primary) {
		return nil, apperr.ErrInvalidValue.WithMessage("primary value must be a positive number")
	}
	if secondary != nil {
		if !kind.HasSecondary() {
			return nil, apperr.ErrInvalidValue.WithMessage("second value is only accepted for blood pressure")
		}
		if !validValue(*secondary) {
			return nil, apperr.ErrInvalidValue.WithMessage("second value must be a positive number")
		}
	}
	return &Measurement{
		SubjectID:      subjectID,
		Kind:           kind,
		PrimaryValue:   primary,
		SecondaryValue: secondary,
		Unit:           vitals.UnitFor(kind),
		RecordedAt:     recordedAt,
		Notes:          notes,
	}, nil
}

func validValue(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Classification runs the severity and alert policies on the reading.
func (m *Measurement) Classification() vitals.Classification {
	return vitals.Classify(m.Kind, m.PrimaryValue, m.SecondaryValue)
}
