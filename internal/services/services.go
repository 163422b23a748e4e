// Package services holds the application operations behind the HTTP
// handlers: measurement submission with merging, advice, the agenda
// lifecycle, reminders and alert triage.
package services

import (
	"context"
	"time"

	"myhealth-server/internal/agenda"
	"myhealth-server/internal/models"
	"myhealth-server/internal/vitals"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role models.Role
}

func (a Actor) IsDoctor() bool  { return a.Role == models.RoleDoctor }
func (a Actor) IsPatient() bool { return a.Role == models.RolePatient }

// Clock returns the current time. Services default to UTC wall time.
type Clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

// ClockIn returns wall time in loc. The agenda uses it so "today" and the
// day bounds follow the clinic's timezone.
func ClockIn(loc *time.Location) Clock {
	if loc == nil {
		return utcNow
	}
	return func() time.Time { return time.Now().In(loc) }
}

// MeasurementRepository is the persistence the measurement service needs.
type MeasurementRepository interface {
	LatestByKind(ctx context.Context, subjectID string, kind vitals.Kind) (*models.Measurement, error)
	Create(ctx context.Context, m *models.Measurement) error
	Save(ctx context.Context, m *models.Measurement) error
	Delete(ctx context.Context, id, subjectID string) error
	ListBySubject(ctx context.Context, subjectID string, kind vitals.Kind, limit int) ([]models.Measurement, error)
}

// AlertRepository is the persistence behind the triage queue.
type AlertRepository interface {
	Upsert(ctx context.Context, a *models.Alert) (bool, error)
	DeleteOpenForMeasurement(ctx context.Context, measurementID string) error
	ListOpen(ctx context.Context, limit int) ([]models.Alert, error)
	FindByID(ctx context.Context, id string) (*models.Alert, error)
	Acknowledge(ctx context.Context, id, doctorID string, at time.Time) (bool, error)
}

// AppointmentRepository is the persistence behind the agenda.
type AppointmentRepository interface {
	Create(ctx context.Context, a *models.Appointment) error
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	Claim(ctx context.Context, id, patientID, notes string) (bool, error)
	Transition(ctx context.Context, id string, from []agenda.Status, to agenda.Status, extra map[string]any) (bool, error)
	ListForDoctorBetween(ctx context.Context, doctorID string, start, end time.Time) ([]models.Appointment, error)
	NextForDoctor(ctx context.Context, doctorID string, now time.Time, limit int) ([]models.Appointment, error)
	ListFreeAfter(ctx context.Context, doctorID string, now time.Time) ([]models.Appointment, error)
	ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
}

// ReminderRepository is the persistence behind reminders.
type ReminderRepository interface {
	Create(ctx context.Context, r *models.Reminder) error
	FindByID(ctx context.Context, id string) (*models.Reminder, error)
	Save(ctx context.Context, r *models.Reminder) error
	Delete(ctx context.Context, id string) error
	ListBySubject(ctx context.Context, subjectID string) ([]models.Reminder, error)
	ListActiveAt(ctx context.Context, timeOfDay string) ([]models.Reminder, error)
}

// UserRepository resolves users for the doctor views.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
}
