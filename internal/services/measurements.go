package services

import (
	"context"

	"github.com/rs/zerolog"

	"myhealth-server/internal/advice"
	"myhealth-server/internal/apperr"
	"myhealth-server/internal/events"
	"myhealth-server/internal/i18n"
	"myhealth-server/internal/models"
	"myhealth-server/internal/vitals"
)

// Action tells the caller whether a submission created or updated a record.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

// Submission is an incoming reading before it is merged or stored.
type Submission struct {
	Kind      vitals.Kind
	Primary   float64
	Secondary *float64
	Notes     string
}

// MergeOutcome is the result of Merge and Submit.
type MergeOutcome struct {
	Action      Action              `json:"action"`
	Measurement *models.Measurement `json:"measurement"`
}

// Merge decides between averaging sub into existing and inserting a new
// record. existing must be the latest reading of the same kind and subject,
// or nil. The existing record is not modified; the returned Measurement is a
// copy carrying the merged values.
func Merge(existing *models.Measurement, subjectID string, sub Submission, now Clock) (MergeOutcome, error) {
	at := now()
	fresh, err := models.NewMeasurement(subjectID, sub.Kind, sub.Primary, sub.Secondary, sub.Notes, at)
	if err != nil {
		return MergeOutcome{}, err
	}
	if existing == nil || existing.Kind != sub.Kind || !vitals.WithinMergeWindow(existing.RecordedAt, at) {
		return MergeOutcome{Action: ActionCreated, Measurement: fresh}, nil
	}

	merged := *existing
	merged.PrimaryValue = mean(existing.PrimaryValue, sub.Primary)
	switch {
	case existing.SecondaryValue != nil && sub.Secondary != nil:
		v := mean(*existing.SecondaryValue, *sub.Secondary)
		merged.SecondaryValue = &v
	case sub.Secondary != nil:
		v := *sub.Secondary
		merged.SecondaryValue = &v
	}
	if sub.Notes != "" {
		merged.Notes = sub.Notes
	}
	merged.RecordedAt = at
	return MergeOutcome{Action: ActionUpdated, Measurement: &merged}, nil
}

func mean(a, b float64) float64 { return (a + b) / 2 }

// MeasurementView is a stored reading with its classification.
type MeasurementView struct {
	models.Measurement
	vitals.Classification
}

// NewMeasurementView classifies m.
func NewMeasurementView(m models.Measurement) MeasurementView {
	return MeasurementView{Measurement: m, Classification: m.Classification()}
}

func viewsOf(ms []models.Measurement) []MeasurementView {
	out := make([]MeasurementView, len(ms))
	for i, m := range ms {
		out[i] = NewMeasurementView(m)
	}
	return out
}

// History is the full record of a subject with advice and chart data.
type History struct {
	Measurements []MeasurementView `json:"measurements"`
	Advice       []advice.Entry    `json:"advice"`
	Chart        []ChartPoint      `json:"chart"`
}

// Chart sizes for the patient history and the doctor's view of a patient.
const (
	PatientChartPerKind = 8
	DoctorChartPerKind  = 20
	DefaultRecentLimit  = 8
)

// MeasurementService records readings and derives advice from them.
type MeasurementService struct {
	measurements MeasurementRepository
	alerts       AlertRepository
	publisher    events.Publisher
	logger       zerolog.Logger
	now          Clock
}

func NewMeasurementService(measurements MeasurementRepository, alerts AlertRepository, publisher events.Publisher, logger zerolog.Logger) *MeasurementService {
	return &MeasurementService{
		measurements: measurements,
		alerts:       alerts,
		publisher:    publisher,
		logger:       logger.With().Str("component", "measurements").Logger(),
		now:          utcNow,
	}
}

// WithClock replaces the time source.
func (s *MeasurementService) WithClock(now Clock) *MeasurementService {
	s.now = now
	return s
}

// Submit merges the reading into the latest one of its kind when it falls in
// the merge window, otherwise stores a new record. The alert queue is kept in
// sync with the resulting values.
func (s *MeasurementService) Submit(ctx context.Context, subjectID string, sub Submission) (MergeOutcome, error) {
	if !sub.Kind.Valid() {
		return MergeOutcome{}, apperr.ErrInvalidKind.WithMessage(string(sub.Kind))
	}
	latest, err := s.measurements.LatestByKind(ctx, subjectID, sub.Kind)
	if err != nil {
		return MergeOutcome{}, err
	}
	out, err := Merge(latest, subjectID, sub, s.now)
	if err != nil {
		return MergeOutcome{}, err
	}

	switch out.Action {
	case ActionCreated:
		err = s.measurements.Create(ctx, out.Measurement)
	case ActionUpdated:
		err = s.measurements.Save(ctx, out.Measurement)
	}
	if err != nil {
		return MergeOutcome{}, err
	}

	if err := s.syncAlert(ctx, out); err != nil {
		return MergeOutcome{}, err
	}

	s.logger.Debug().
		Str("subject_id", subjectID).
		Str("kind", string(sub.Kind)).
		Str("action", string(out.Action)).
		Msg("measurement recorded")
	return out, nil
}

func (s *MeasurementService) syncAlert(ctx context.Context, out MergeOutcome) error {
	m := out.Measurement
	c := m.Classification()
	if !c.Alert {
		if out.Action == ActionUpdated {
			return s.alerts.DeleteOpenForMeasurement(ctx, m.ID)
		}
		return nil
	}

	alert := models.AlertFor(m)
	created, err := s.alerts.Upsert(ctx, alert)
	if err != nil {
		return err
	}
	if created {
		events.Emit(ctx, s.publisher, s.logger, events.New(events.TypeMeasurementAlert, m.SubjectID, events.MeasurementAlert{
			AlertID:        alert.ID,
			MeasurementID:  m.ID,
			SubjectID:      m.SubjectID,
			Kind:           string(m.Kind),
			PrimaryValue:   m.PrimaryValue,
			SecondaryValue: m.SecondaryValue,
			Severity:       string(c.Severity),
		}))
	}
	return nil
}

// Delete removes one of the subject's readings and its open alert.
func (s *MeasurementService) Delete(ctx context.Context, subjectID, id string) error {
	if err := s.measurements.Delete(ctx, id, subjectID); err != nil {
		return err
	}
	return s.alerts.DeleteOpenForMeasurement(ctx, id)
}

// Recent returns up to limit readings, newest first, optionally of one kind.
func (s *MeasurementService) Recent(ctx context.Context, subjectID string, kind vitals.Kind, limit int) ([]MeasurementView, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	ms, err := s.measurements.ListBySubject(ctx, subjectID, kind, limit)
	if err != nil {
		return nil, err
	}
	return viewsOf(ms), nil
}

// History returns every reading of the subject, the advice for the latest
// values and a chart series with perKind points per kind.
func (s *MeasurementService) History(ctx context.Context, subjectID string, perKind int, loc i18n.Locale) (*History, error) {
	ms, err := s.measurements.ListBySubject(ctx, subjectID, "", 0)
	if err != nil {
		return nil, err
	}
	return &History{
		Measurements: viewsOf(ms),
		Advice:       advice.Generate(advice.SnapshotFromHistory(readingsOf(ms)), loc),
		Chart:        ChartSeries(ms, perKind),
	}, nil
}

// Advice runs the advice engine on the subject's latest readings.
func (s *MeasurementService) Advice(ctx context.Context, subjectID string, loc i18n.Locale) ([]advice.Entry, advice.Snapshot, error) {
	snap, err := s.Snapshot(ctx, subjectID)
	if err != nil {
		return nil, advice.Snapshot{}, err
	}
	return advice.Generate(snap, loc), snap, nil
}

// Snapshot collects the latest value per kind and the previous weight.
func (s *MeasurementService) Snapshot(ctx context.Context, subjectID string) (advice.Snapshot, error) {
	var history []models.Measurement
	for _, kind := range vitals.Kinds {
		limit := 1
		if kind == vitals.KindWeight {
			limit = 2
		}
		ms, err := s.measurements.ListBySubject(ctx, subjectID, kind, limit)
		if err != nil {
			return advice.Snapshot{}, err
		}
		history = append(history, ms...)
	}
	return advice.SnapshotFromHistory(readingsOf(history)), nil
}

func readingsOf(ms []models.Measurement) []advice.Reading {
	out := make([]advice.Reading, len(ms))
	for i, m := range ms {
		out[i] = advice.Reading{Kind: m.Kind, Value: m.PrimaryValue}
	}
	return out
}
