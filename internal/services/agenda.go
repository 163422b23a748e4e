package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"myhealth-server/internal/agenda"
	"myhealth-server/internal/apperr"
	"myhealth-server/internal/events"
	"myhealth-server/internal/i18n"
	"myhealth-server/internal/models"
)

// DashboardUpcoming is the number of next appointments on the doctor dashboard.
const DashboardUpcoming = 3

// DayView is the doctor's agenda for one date.
type DayView struct {
	Date             string               `json:"date"`
	WeekDays         []agenda.Day         `json:"weekDays"`
	Appointments     []models.Appointment `json:"appointments"`
	NowOffsetPercent float64              `json:"nowOffsetPercent"`
	IsToday          bool                 `json:"isToday"`
}

// FreeDay groups the bookable slots of one date.
type FreeDay struct {
	Date  string               `json:"date"`
	Slots []models.Appointment `json:"slots"`
}

// AgendaService runs the slot lifecycle. Every status change is written as a
// conditional update on the current status.
type AgendaService struct {
	appointments AppointmentRepository
	publisher    events.Publisher
	logger       zerolog.Logger
	now          Clock
}

func NewAgendaService(appointments AppointmentRepository, publisher events.Publisher, logger zerolog.Logger) *AgendaService {
	return &AgendaService{
		appointments: appointments,
		publisher:    publisher,
		logger:       logger.With().Str("component", "agenda").Logger(),
		now:          utcNow,
	}
}

// WithClock replaces the time source.
func (s *AgendaService) WithClock(now Clock) *AgendaService {
	s.now = now
	return s
}

// CreateSlot opens a free slot in the doctor's agenda.
func (s *AgendaService) CreateSlot(ctx context.Context, actor Actor, req agenda.SlotRequest) (*models.Appointment, error) {
	if !actor.IsDoctor() {
		return nil, apperr.ErrForbidden
	}
	slot, err := agenda.NewSlot(req)
	if err != nil {
		return nil, err
	}
	a := &models.Appointment{
		DoctorID:        actor.ID,
		StartTime:       slot.Start.UTC(),
		EndTime:         slot.End.UTC(),
		DurationMinutes: slot.DurationMinutes,
		Kind:            slot.Kind,
		Status:          agenda.StatusFree,
	}
	if err := s.appointments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// BookSlot claims a free slot for the patient. A slot that is no longer free
// when the write lands yields SlotUnavailable.
func (s *AgendaService) BookSlot(ctx context.Context, actor Actor, slotID, reason string) (*models.Appointment, error) {
	if !actor.IsPatient() {
		return nil, apperr.ErrForbidden
	}
	a, err := s.appointments.FindByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if a.Status != agenda.StatusFree || a.IsPast(s.now()) {
		return nil, apperr.ErrSlotUnavailable
	}
	ok, err := s.appointments.Claim(ctx, slotID, actor.ID, reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrSlotUnavailable
	}
	return s.changed(ctx, a, agenda.StatusFree)
}

// Accept confirms a pending request. Only the owning doctor may accept.
// videoLink is stored for video consultations when given.
func (s *AgendaService) Accept(ctx context.Context, actor Actor, id, videoLink string) (*models.Appointment, error) {
	a, err := s.ownedBy(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	var extra map[string]any
	if a.IsVideo() && videoLink != "" {
		extra = map[string]any{"video_link": videoLink}
	}
	return s.move(ctx, a, []agenda.Status{agenda.StatusPending}, agenda.StatusConfirmed, extra)
}

// Reject cancels a pending request or withdraws an unclaimed slot.
func (s *AgendaService) Reject(ctx context.Context, actor Actor, id string) (*models.Appointment, error) {
	a, err := s.ownedBy(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.move(ctx, a, []agenda.Status{agenda.StatusFree, agenda.StatusPending}, agenda.StatusCancelled, nil)
}

// Complete marks a confirmed appointment as done.
func (s *AgendaService) Complete(ctx context.Context, actor Actor, id string) (*models.Appointment, error) {
	a, err := s.ownedBy(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.move(ctx, a, []agenda.Status{agenda.StatusConfirmed}, agenda.StatusDone, nil)
}

// Cancel withdraws a pending or confirmed booking. The owning doctor and the
// booked patient may cancel.
func (s *AgendaService) Cancel(ctx context.Context, actor Actor, id string) (*models.Appointment, error) {
	a, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsOwnedBy(actor.ID) && !a.IsBookedBy(actor.ID) {
		return nil, apperr.ErrForbidden
	}
	return s.move(ctx, a, []agenda.Status{agenda.StatusPending, agenda.StatusConfirmed}, agenda.StatusCancelled, nil)
}

func (s *AgendaService) ownedBy(ctx context.Context, actor Actor, id string) (*models.Appointment, error) {
	a, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsDoctor() || !a.IsOwnedBy(actor.ID) {
		return nil, apperr.ErrForbidden
	}
	return a, nil
}

func (s *AgendaService) move(ctx context.Context, a *models.Appointment, from []agenda.Status, to agenda.Status, extra map[string]any) (*models.Appointment, error) {
	if !containsStatus(from, a.Status) {
		return nil, conflict(a.Status, to)
	}
	if err := agenda.Transition(a.Status, to); err != nil {
		return nil, err
	}
	ok, err := s.appointments.Transition(ctx, a.ID, from, to, extra)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost a race: report the state that won.
		current, err := s.appointments.FindByID(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		return nil, conflict(current.Status, to)
	}
	return s.changed(ctx, a, a.Status)
}

// changed re-reads the appointment after a successful write and publishes the
// status change.
func (s *AgendaService) changed(ctx context.Context, before *models.Appointment, from agenda.Status) (*models.Appointment, error) {
	after, err := s.appointments.FindByID(ctx, before.ID)
	if err != nil {
		return nil, err
	}
	patientID := ""
	if after.PatientID != nil {
		patientID = *after.PatientID
	}
	events.Emit(ctx, s.publisher, s.logger, events.New(events.TypeAppointmentStatus, after.DoctorID, events.AppointmentStatus{
		AppointmentID: after.ID,
		DoctorID:      after.DoctorID,
		PatientID:     patientID,
		From:          string(from),
		To:            string(after.Status),
		StartTime:     after.StartTime,
	}))
	s.logger.Info().
		Str("appointment_id", after.ID).
		Str("from", string(from)).
		Str("to", string(after.Status)).
		Msg("appointment status changed")
	return after, nil
}

func conflict(from, to agenda.Status) error {
	return apperr.ErrConflict.WithMessage(string(from) + " -> " + string(to))
}

func containsStatus(list []agenda.Status, s agenda.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// DayView builds the agenda read model for target.
func (s *AgendaService) DayView(ctx context.Context, actor Actor, target time.Time, loc i18n.Locale) (*DayView, error) {
	if !actor.IsDoctor() {
		return nil, apperr.ErrForbidden
	}
	now := s.now()
	start, end := agenda.DayBounds(target)
	appointments, err := s.appointments.ListForDoctorBetween(ctx, actor.ID, start, end)
	if err != nil {
		return nil, err
	}
	return &DayView{
		Date:             start.Format(agenda.DateLayout),
		WeekDays:         agenda.WeekStrip(start, loc),
		Appointments:     appointments,
		NowOffsetPercent: agenda.NowOffsetPercent(start, now),
		IsToday:          start.Format(agenda.DateLayout) == now.In(start.Location()).Format(agenda.DateLayout),
	}, nil
}

// DayViewFor parses a YYYY-MM-DD date, defaulting to today, and builds the
// day view.
func (s *AgendaService) DayViewFor(ctx context.Context, actor Actor, rawDate string, loc i18n.Locale) (*DayView, error) {
	return s.DayView(ctx, actor, agenda.ParseDate(rawDate, s.now()), loc)
}

// Upcoming returns the doctor's next non-cancelled appointments.
func (s *AgendaService) Upcoming(ctx context.Context, actor Actor, limit int) ([]models.Appointment, error) {
	if !actor.IsDoctor() {
		return nil, apperr.ErrForbidden
	}
	return s.appointments.NextForDoctor(ctx, actor.ID, s.now(), limit)
}

// FreeSlots lists bookable slots from now on, grouped by day in start order.
// An empty doctorID lists every doctor.
func (s *AgendaService) FreeSlots(ctx context.Context, doctorID string) ([]FreeDay, error) {
	now := s.now()
	slots, err := s.appointments.ListFreeAfter(ctx, doctorID, now)
	if err != nil {
		return nil, err
	}
	days := []FreeDay{}
	for _, slot := range slots {
		date := slot.StartTime.In(now.Location()).Format(agenda.DateLayout)
		if n := len(days); n > 0 && days[n-1].Date == date {
			days[n-1].Slots = append(days[n-1].Slots, slot)
			continue
		}
		days = append(days, FreeDay{Date: date, Slots: []models.Appointment{slot}})
	}
	return days, nil
}

// ListFor returns the caller's appointments: bookings for a patient, the
// whole agenda for a doctor.
func (s *AgendaService) ListFor(ctx context.Context, actor Actor) ([]models.Appointment, error) {
	if actor.IsDoctor() {
		return s.appointments.ListForDoctor(ctx, actor.ID)
	}
	return s.appointments.ListForPatient(ctx, actor.ID)
}
