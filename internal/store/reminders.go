package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"myhealth-server/internal/models"
)

// ReminderStore persists reminders.
type ReminderStore struct {
	db *gorm.DB
}

func (s *ReminderStore) Create(ctx context.Context, r *models.Reminder) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

func (s *ReminderStore) FindByID(ctx context.Context, id string) (*models.Reminder, error) {
	var r models.Reminder
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, notFound("find reminder", err)
	}
	return &r, nil
}

func (s *ReminderStore) Save(ctx context.Context, r *models.Reminder) error {
	// Select("*") so a false IsActive is written too.
	if err := s.db.WithContext(ctx).Select("*").Save(r).Error; err != nil {
		return fmt.Errorf("save reminder: %w", err)
	}
	return nil
}

func (s *ReminderStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&models.Reminder{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	return nil
}

// ListBySubject returns the subject's reminders ordered by time of day.
func (s *ReminderStore) ListBySubject(ctx context.Context, subjectID string) ([]models.Reminder, error) {
	var out []models.Reminder
	if err := s.db.WithContext(ctx).Where("subject_id = ?", subjectID).Order("time_of_day asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return out, nil
}

// ListActiveAt returns active reminders scheduled at timeOfDay (HH:MM).
func (s *ReminderStore) ListActiveAt(ctx context.Context, timeOfDay string) ([]models.Reminder, error) {
	var out []models.Reminder
	if err := s.db.WithContext(ctx).Where("is_active = ? AND time_of_day = ?", true, timeOfDay).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list due reminders: %w", err)
	}
	return out, nil
}
