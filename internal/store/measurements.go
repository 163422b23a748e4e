package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"myhealth-server/internal/models"
	"myhealth-server/internal/vitals"
)

// MeasurementStore persists vital-sign readings.
type MeasurementStore struct {
	db *gorm.DB
}

// LatestByKind returns the most recent reading of kind for the subject, or
// nil when there is none.
func (s *MeasurementStore) LatestByKind(ctx context.Context, subjectID string, kind vitals.Kind) (*models.Measurement, error) {
	var m models.Measurement
	err := s.db.WithContext(ctx).
		Where("subject_id = ? AND kind = ?", subjectID, kind).
		Order("recorded_at desc").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest measurement: %w", err)
	}
	return &m, nil
}

func (s *MeasurementStore) Create(ctx context.Context, m *models.Measurement) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create measurement: %w", err)
	}
	return nil
}

func (s *MeasurementStore) Save(ctx context.Context, m *models.Measurement) error {
	if err := s.db.WithContext(ctx).Save(m).Error; err != nil {
		return fmt.Errorf("save measurement: %w", err)
	}
	return nil
}

// Delete removes a reading owned by subjectID.
func (s *MeasurementStore) Delete(ctx context.Context, id, subjectID string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND subject_id = ?", id, subjectID).Delete(&models.Measurement{})
	if res.Error != nil {
		return fmt.Errorf("delete measurement: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("delete measurement", gorm.ErrRecordNotFound)
	}
	return nil
}

// ListBySubject returns readings newest first. An empty kind lists all kinds;
// limit <= 0 means no limit.
func (s *MeasurementStore) ListBySubject(ctx context.Context, subjectID string, kind vitals.Kind, limit int) ([]models.Measurement, error) {
	q := s.db.WithContext(ctx).Where("subject_id = ?", subjectID)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []models.Measurement
	if err := q.Order("recorded_at desc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	return out, nil
}
