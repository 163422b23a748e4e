package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"myhealth-server/internal/agenda"
	"myhealth-server/internal/models"
)

// AppointmentStore persists agenda slots. Claim and Transition are
// conditional updates so two concurrent writers cannot both win a slot.
type AppointmentStore struct {
	db *gorm.DB
}

func (s *AppointmentStore) Create(ctx context.Context, a *models.Appointment) error {
	if err := s.db.WithContext(ctx).Omit("Doctor", "Patient").Create(a).Error; err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

// FindByID loads an appointment with its doctor and patient.
func (s *AppointmentStore) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	var a models.Appointment
	err := s.db.WithContext(ctx).Preload("Doctor").Preload("Patient").First(&a, "id = ?", id).Error
	if err != nil {
		return nil, notFound("find appointment", err)
	}
	return &a, nil
}

// Claim books a free slot for patientID. It reports false when the slot was
// no longer free at write time.
func (s *AppointmentStore) Claim(ctx context.Context, id, patientID, notes string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ? AND status = ?", id, agenda.StatusFree).
		Updates(map[string]any{
			"patient_id": patientID,
			"status":     agenda.StatusPending,
			"notes":      notes,
		})
	if res.Error != nil {
		return false, fmt.Errorf("claim appointment: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// Transition moves the appointment to `to` only if its current status is one
// of from. It reports whether a row changed.
func (s *AppointmentStore) Transition(ctx context.Context, id string, from []agenda.Status, to agenda.Status, extra map[string]any) (bool, error) {
	if len(from) == 0 {
		return false, nil
	}
	states := make([]string, len(from))
	for i, st := range from {
		states[i] = string(st)
	}
	updates := map[string]any{"status": to}
	for k, v := range extra {
		updates[k] = v
	}
	res := s.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ? AND status IN ?", id, states).
		Updates(updates)
	if res.Error != nil {
		return false, fmt.Errorf("transition appointment: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// ListForDoctorBetween returns the doctor's non-cancelled appointments that
// start in [start, end), earliest first.
func (s *AppointmentStore) ListForDoctorBetween(ctx context.Context, doctorID string, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	err := s.db.WithContext(ctx).Preload("Patient").
		Where("doctor_id = ? AND start_time >= ? AND start_time < ? AND status <> ?", doctorID, start.UTC(), end.UTC(), agenda.StatusCancelled).
		Order("start_time asc").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list agenda: %w", err)
	}
	return out, nil
}

// NextForDoctor returns up to limit non-cancelled appointments starting after
// now.
func (s *AppointmentStore) NextForDoctor(ctx context.Context, doctorID string, now time.Time, limit int) ([]models.Appointment, error) {
	var out []models.Appointment
	err := s.db.WithContext(ctx).Preload("Patient").
		Where("doctor_id = ? AND start_time >= ? AND status <> ?", doctorID, now.UTC(), agenda.StatusCancelled).
		Order("start_time asc").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list next appointments: %w", err)
	}
	return out, nil
}

// ListFreeAfter returns free slots starting at or after now, earliest first.
// An empty doctorID lists every doctor.
func (s *AppointmentStore) ListFreeAfter(ctx context.Context, doctorID string, now time.Time) ([]models.Appointment, error) {
	q := s.db.WithContext(ctx).Preload("Doctor").
		Where("status = ? AND start_time >= ?", agenda.StatusFree, now.UTC())
	if doctorID != "" {
		q = q.Where("doctor_id = ?", doctorID)
	}
	var out []models.Appointment
	if err := q.Order("start_time asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list free slots: %w", err)
	}
	return out, nil
}

// ListForPatient returns the patient's bookings, most recent first.
func (s *AppointmentStore) ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var out []models.Appointment
	err := s.db.WithContext(ctx).Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("start_time desc").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list patient appointments: %w", err)
	}
	return out, nil
}

// ListForDoctor returns every slot of the doctor, earliest first.
func (s *AppointmentStore) ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	var out []models.Appointment
	err := s.db.WithContext(ctx).Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("start_time asc").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list doctor appointments: %w", err)
	}
	return out, nil
}
