package services

import (
	"context"

	"myhealth-server/internal/apperr"
	"myhealth-server/internal/i18n"
	"myhealth-server/internal/models"
)

// Dashboard is the doctor's landing view.
type Dashboard struct {
	Alerts   []models.Alert       `json:"alerts"`
	Upcoming []models.Appointment `json:"nextAppointments"`
}

// PatientRecord is a patient profile with their measurement history.
type PatientRecord struct {
	Patient models.UserSanitized `json:"patient"`
	*History
}

// DoctorService assembles the doctor-only read models.
type DoctorService struct {
	users        UserRepository
	alerts       *AlertService
	agenda       *AgendaService
	measurements *MeasurementService
}

func NewDoctorService(users UserRepository, alerts *AlertService, agenda *AgendaService, measurements *MeasurementService) *DoctorService {
	return &DoctorService{users: users, alerts: alerts, agenda: agenda, measurements: measurements}
}

func (s *DoctorService) Dashboard(ctx context.Context, actor Actor) (*Dashboard, error) {
	alerts, err := s.alerts.Open(ctx, actor)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.agenda.Upcoming(ctx, actor, DashboardUpcoming)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Alerts: alerts, Upcoming: upcoming}, nil
}

// Patients lists every patient account.
func (s *DoctorService) Patients(ctx context.Context, actor Actor) ([]models.UserSanitized, error) {
	if !actor.IsDoctor() {
		return nil, apperr.ErrForbidden
	}
	users, err := s.users.ListByRole(ctx, models.RolePatient)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserSanitized, len(users))
	for i := range users {
		out[i] = users[i].Sanitize()
	}
	return out, nil
}

// PatientHistory returns a patient's profile, readings, advice and chart.
func (s *DoctorService) PatientHistory(ctx context.Context, actor Actor, patientID string, loc i18n.Locale) (*PatientRecord, error) {
	if !actor.IsDoctor() {
		return nil, apperr.ErrForbidden
	}
	patient, err := s.users.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient.Role != models.RolePatient {
		return nil, apperr.ErrNotFound.WithMessage("not a patient")
	}
	history, err := s.measurements.History(ctx, patient.ID, DoctorChartPerKind, loc)
	if err != nil {
		return nil, err
	}
	return &PatientRecord{Patient: patient.Sanitize(), History: history}, nil
}
