// Package events publishes domain notifications to Kafka, or to the log when
// no broker is configured.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event types.
const (
	TypeMeasurementAlert  = "measurement.alert"
	TypeReminderDue       = "reminder.due"
	TypeAppointmentStatus = "appointment.status"
)

// Event is the envelope written to the broker. Key partitions the stream,
// usually by subject id.
type Event struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// MeasurementAlert is raised when a reading crosses the escalation thresholds.
type MeasurementAlert struct {
	AlertID        string   `json:"alertId"`
	MeasurementID  string   `json:"measurementId"`
	SubjectID      string   `json:"subjectId"`
	Kind           string   `json:"type"`
	PrimaryValue   float64  `json:"value1"`
	SecondaryValue *float64 `json:"value2,omitempty"`
	Severity       string   `json:"severity"`
}

// ReminderDue is raised by the dispatcher when a reminder fires.
type ReminderDue struct {
	ReminderID string `json:"reminderId"`
	SubjectID  string `json:"subjectId"`
	Title      string `json:"title"`
	Time       string `json:"time"`
}

// AppointmentStatus is raised on every booking lifecycle change.
type AppointmentStatus struct {
	AppointmentID string    `json:"appointmentId"`
	DoctorID      string    `json:"doctorId"`
	PatientID     string    `json:"patientId,omitempty"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	StartTime     time.Time `json:"startTime"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// New builds an Event stamped with the current time.
func New(typ, key string, payload any) Event {
	return Event{Type: typ, Key: key, OccurredAt: time.Now().UTC(), Payload: payload}
}

// Emit publishes e and logs a failure instead of returning it. Notifications
// never fail the operation that raised them.
func Emit(ctx context.Context, p Publisher, logger zerolog.Logger, e Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		logger.Warn().Err(err).Str("event", e.Type).Str("key", e.Key).Msg("publish event")
	}
}

// LogPublisher writes events to the logger.
type LogPublisher struct {
	logger zerolog.Logger
}

func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, e Event) error {
	p.logger.Info().
		Str("event", e.Type).
		Str("key", e.Key).
		Interface("payload", e.Payload).
		Msg("event published")
	return nil
}

func (p *LogPublisher) Close() error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of what was published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// OfType filters Events by type.
func (r *Recorder) OfType(typ string) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}
