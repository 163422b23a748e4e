package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myhealth-server/internal/apperr"
	"myhealth-server/internal/models"
	"myhealth-server/internal/vitals"
)

func fp(v float64) *float64 { return &v }

func at(t time.Time) Clock { return func() time.Time { return t } }

func TestMerge_NoExistingInserts(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	out, err := Merge(nil, "u1", Submission{Kind: vitals.KindBloodSugar, Primary: 110}, at(now))
	require.NoError(t, err)
	assert.Equal(t, ActionCreated, out.Action)
	assert.Equal(t, "mg/dL", out.Measurement.Unit)
	assert.Equal(t, now, out.Measurement.RecordedAt)
	assert.Equal(t, "u1", out.Measurement.SubjectID)
}

func TestMerge_WindowBoundary(t *testing.T) {
	t0 := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	existing := &models.Measurement{SubjectID: "u1", Kind: vitals.KindBloodSugar, PrimaryValue: 110, RecordedAt: t0}

	tests := []struct {
		name    string
		elapsed time.Duration
		want    Action
	}{
		{"ten minutes", 10 * time.Minute, ActionUpdated},
		{"just under", 30*time.Minute - time.Second, ActionUpdated},
		{"exactly thirty minutes", 30 * time.Minute, ActionCreated},
		{"an hour", time.Hour, ActionCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Merge(existing, "u1", Submission{Kind: vitals.KindBloodSugar, Primary: 130}, at(t0.Add(tt.elapsed)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Action)
		})
	}
}

func TestMerge_AveragesAndRefreshesTimestamp(t *testing.T) {
	t0 := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	existing := &models.Measurement{SubjectID: "u1", Kind: vitals.KindBloodSugar, PrimaryValue: 110, RecordedAt: t0, Notes: "fasting"}

	out, err := Merge(existing, "u1", Submission{Kind: vitals.KindBloodSugar, Primary: 130}, at(t0.Add(10*time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, out.Action)
	assert.Equal(t, 120.0, out.Measurement.PrimaryValue)
	assert.Equal(t, t0.Add(10*time.Minute), out.Measurement.RecordedAt)
	assert.Equal(t, "fasting", out.Measurement.Notes)
	// Input untouched.
	assert.Equal(t, 110.0, existing.PrimaryValue)

	third, err := Merge(out.Measurement, "u1", Submission{Kind: vitals.KindBloodSugar, Primary: 100}, at(t0.Add(25*time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, third.Action)
	assert.Equal(t, 110.0, third.Measurement.PrimaryValue)
}

func TestMerge_SecondaryValue(t *testing.T) {
	t0 := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	now := at(t0.Add(5 * time.Minute))

	both := &models.Measurement{Kind: vitals.KindBloodPressure, PrimaryValue: 130, SecondaryValue: fp(80), RecordedAt: t0}
	out, err := Merge(both, "u1", Submission{Kind: vitals.KindBloodPressure, Primary: 150, Secondary: fp(90)}, now)
	require.NoError(t, err)
	assert.Equal(t, 140.0, out.Measurement.PrimaryValue)
	assert.Equal(t, 85.0, *out.Measurement.SecondaryValue)

	onlyNew := &models.Measurement{Kind: vitals.KindBloodPressure, PrimaryValue: 130, RecordedAt: t0}
	out, err = Merge(onlyNew, "u1", Submission{Kind: vitals.KindBloodPressure, Primary: 130, Secondary: fp(88)}, now)
	require.NoError(t, err)
	assert.Equal(t, 88.0, *out.Measurement.SecondaryValue)

	onlyOld := &models.Measurement{Kind: vitals.KindBloodPressure, PrimaryValue: 130, SecondaryValue: fp(82), RecordedAt: t0}
	out, err = Merge(onlyOld, "u1", Submission{Kind: vitals.KindBloodPressure, Primary: 130}, now)
	require.NoError(t, err)
	assert.Equal(t, 82.0, *out.Measurement.SecondaryValue)
}

func TestMerge_RejectsInvalidSubmission(t *testing.T) {
	now := at(time.Now())
	_, err := Merge(nil, "u1", Submission{Kind: vitals.KindWeight, Primary: 70, Secondary: fp(1)}, now)
	assert.True(t, errors.Is(err, apperr.ErrInvalidValue))

	_, err = Merge(nil, "u1", Submission{Kind: "cholesterol", Primary: 1}, now)
	assert.True(t, errors.Is(err, apperr.ErrInvalidKind))
}

func TestChartSeries(t *testing.T) {
	t0 := time.Date(2024, 6, 15, 8, 30, 0, 0, time.UTC)
	var ms []models.Measurement
	for i := 0; i < 5; i++ {
		ms = append(ms, models.Measurement{Kind: vitals.KindWeight, PrimaryValue: 70 + float64(i), RecordedAt: t0.Add(time.Duration(i) * time.Hour)})
	}
	ms = append(ms, models.Measurement{Kind: vitals.KindBloodPressure, PrimaryValue: 120, SecondaryValue: fp(80), RecordedAt: t0.Add(90 * time.Minute)})

	points := ChartSeries(ms, 3)
	require.Len(t, points, 4)
	assert.Equal(t, vitals.KindBloodPressure, points[0].Type)
	assert.Equal(t, "15/06 10:00", points[0].Date)
	assert.Equal(t, 80.0, *points[0].Val2)
	assert.Equal(t, 72.0, points[1].Val1)
	assert.Equal(t, 74.0, points[3].Val1)
	for i := 1; i < len(points); i++ {
		assert.LessOrEqual(t, points[i-1].Timestamp, points[i].Timestamp)
	}

	assert.Empty(t, ChartSeries(nil, 8))
}
