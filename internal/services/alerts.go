package services

import (
	"context"

	"myhealth-server/internal/apperr"
	"myhealth-server/internal/models"
)

// TriageLimit caps the open alerts shown to doctors.
const TriageLimit = 50

// AlertService exposes the triage queue to doctors.
type AlertService struct {
	alerts AlertRepository
	now    Clock
}

func NewAlertService(alerts AlertRepository) *AlertService {
	return &AlertService{alerts: alerts, now: utcNow}
}

// WithClock replaces the time source.
func (s *AlertService) WithClock(now Clock) *AlertService {
	s.now = now
	return s
}

// Open lists open alerts, newest reading first.
func (s *AlertService) Open(ctx context.Context, actor Actor) ([]models.Alert, error) {
	if !actor.IsDoctor() {
		return nil, apperr.ErrForbidden
	}
	return s.alerts.ListOpen(ctx, TriageLimit)
}

// Acknowledge closes an open alert on behalf of the doctor.
func (s *AlertService) Acknowledge(ctx context.Context, actor Actor, id string) (*models.Alert, error) {
	if !actor.IsDoctor() {
		return nil, apperr.ErrForbidden
	}
	if _, err := s.alerts.FindByID(ctx, id); err != nil {
		return nil, err
	}
	ok, err := s.alerts.Acknowledge(ctx, id, actor.ID, s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrConflict.WithMessage("alert already acknowledged")
	}
	return s.alerts.FindByID(ctx, id)
}
