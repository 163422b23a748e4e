// Package store implements persistence for the service layer on top of gorm.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"myhealth-server/internal/apperr"
)

// notFound turns gorm.ErrRecordNotFound into apperr.ErrNotFound and wraps
// everything else with op.
func notFound(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound.WithMessage(op)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Store bundles every repository over one connection.
type Store struct {
	Users        *UserStore
	Measurements *MeasurementStore
	Reminders    *ReminderStore
	Appointments *AppointmentStore
	Alerts       *AlertStore
}

// New builds all repositories on db.
func New(db *gorm.DB) *Store {
	return &Store{
		Users:        &UserStore{db: db},
		Measurements: &MeasurementStore{db: db},
		Reminders:    &ReminderStore{db: db},
		Appointments: &AppointmentStore{db: db},
		Alerts:       &AlertStore{db: db},
	}
}
