package services

import (
	"context"

	"myhealth-server/internal/apperr"
	"myhealth-server/internal/models"
)

// ReminderService manages a subject's reminders. Only the owner may change
// or delete one.
type ReminderService struct {
	reminders ReminderRepository
}

func NewReminderService(reminders ReminderRepository) *ReminderService {
	return &ReminderService{reminders: reminders}
}

func (s *ReminderService) List(ctx context.Context, subjectID string) ([]models.Reminder, error) {
	return s.reminders.ListBySubject(ctx, subjectID)
}

func (s *ReminderService) Create(ctx context.Context, subjectID, title, timeOfDay, days string) (*models.Reminder, error) {
	r, err := models.NewReminder(subjectID, title, timeOfDay, days)
	if err != nil {
		return nil, err
	}
	if err := s.reminders.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Toggle flips IsActive and returns the updated reminder.
func (s *ReminderService) Toggle(ctx context.Context, subjectID, id string) (*models.Reminder, error) {
	r, err := s.owned(ctx, subjectID, id)
	if err != nil {
		return nil, err
	}
	r.IsActive = !r.IsActive
	if err := s.reminders.Save(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReminderService) Delete(ctx context.Context, subjectID, id string) error {
	if _, err := s.owned(ctx, subjectID, id); err != nil {
		return err
	}
	return s.reminders.Delete(ctx, id)
}

func (s *ReminderService) owned(ctx context.Context, subjectID, id string) (*models.Reminder, error) {
	r, err := s.reminders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.SubjectID != subjectID {
		return nil, apperr.ErrForbidden
	}
	return r, nil
}
