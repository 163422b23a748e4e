package models

import (
	"strings"
	"time"

	"myhealth-server/internal/apperr"
)

// TimeOfDayLayout is the HH:MM format of Reminder.TimeOfDay.
const TimeOfDayLayout = "15:04"

// Reminder is a recurring medication or measurement reminder.
type Reminder struct {
	BaseModel
	SubjectID string `gorm:"size:36;not null;index" json:"subjectId"`
	Title     string `gorm:"size:100;not null" json:"title"`
	TimeOfDay string `gorm:"size:5;not null;index" json:"time"`
	Days      string `gorm:"size:50" json:"days"`
	IsActive  bool   `gorm:"not null;default:true" json:"isActive"`
}

// NewReminder validates the title and the HH:MM time and returns an active
// reminder.
func NewReminder(subjectID, title, timeOfDay, days string) (*Reminder, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperr.ErrInvalidInput.WithMessage("title is required")
	}
	normalized, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return nil, err
	}
	return &Reminder{
		SubjectID: subjectID,
		Title:     title,
		TimeOfDay: normalized,
		Days:      strings.TrimSpace(days),
		IsActive:  true,
	}, nil
}

// ParseTimeOfDay accepts "H:MM" or "HH:MM" and returns the zero-padded form.
func ParseTimeOfDay(raw string) (string, error) {
	t, err := time.Parse(TimeOfDayLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", apperr.ErrInvalidTime.WithMessage(raw)
	}
	return t.Format(TimeOfDayLayout), nil
}
