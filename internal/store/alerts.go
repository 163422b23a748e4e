package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"myhealth-server/internal/models"
)

// AlertStore persists the doctors' triage queue.
type AlertStore struct {
	db *gorm.DB
}

// Upsert creates the alert for its measurement or refreshes the reading
// values of the existing one. The triage status is left untouched. It reports
// whether a new alert was created.
func (s *AlertStore) Upsert(ctx context.Context, a *models.Alert) (bool, error) {
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Alert
		err := tx.Where("measurement_id = ?", a.MeasurementID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Omit("Subject").Create(a).Error; err != nil {
				return fmt.Errorf("create alert: %w", err)
			}
			created = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("find alert: %w", err)
		}
		err = tx.Model(&existing).Updates(map[string]any{
			"primary_value":   a.PrimaryValue,
			"secondary_value": a.SecondaryValue,
			"recorded_at":     a.RecordedAt,
		}).Error
		if err != nil {
			return fmt.Errorf("update alert: %w", err)
		}
		a.ID = existing.ID
		a.Status = existing.Status
		a.CreatedAt = existing.CreatedAt
		return nil
	})
	return created, err
}

// DeleteOpenForMeasurement drops the open alert of a measurement, if any.
func (s *AlertStore) DeleteOpenForMeasurement(ctx context.Context, measurementID string) error {
	err := s.db.WithContext(ctx).
		Where("measurement_id = ? AND status = ?", measurementID, models.AlertStatusOpen).
		Delete(&models.Alert{}).Error
	if err != nil {
		return fmt.Errorf("delete alert: %w", err)
	}
	return nil
}

// ListOpen returns up to limit open alerts, newest reading first.
func (s *AlertStore) ListOpen(ctx context.Context, limit int) ([]models.Alert, error) {
	var out []models.Alert
	err := s.db.WithContext(ctx).Preload("Subject").
		Where("status = ?", models.AlertStatusOpen).
		Order("recorded_at desc").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return out, nil
}

func (s *AlertStore) FindByID(ctx context.Context, id string) (*models.Alert, error) {
	var a models.Alert
	if err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, notFound("find alert", err)
	}
	return &a, nil
}

// Acknowledge closes an open alert. It reports false when the alert was
// already acknowledged.
func (s *AlertStore) Acknowledge(ctx context.Context, id, doctorID string, at time.Time) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Alert{}).
		Where("id = ? AND status = ?", id, models.AlertStatusOpen).
		Updates(map[string]any{
			"status":          models.AlertStatusAcknowledged,
			"acknowledged_by": doctorID,
			"acknowledged_at": at,
		})
	if res.Error != nil {
		return false, fmt.Errorf("acknowledge alert: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}
