// Package agenda holds the appointment slot lifecycle and the doctor's day
// view read model.
package agenda

import (
	"time"

	"myhealth-server/internal/apperr"
)

// Status of an appointment row.
type Status string

const (
	StatusFree      Status = "free"
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusDone      Status = "done"
)

// Kind of consultation.
type Kind string

const (
	KindInPerson  Kind = "cabinet"
	KindVideo     Kind = "visio"
	KindHomeVisit Kind = "domicile"
)

// Valid reports whether k is a known consultation kind.
func (k Kind) Valid() bool {
	switch k {
	case KindInPerson, KindVideo, KindHomeVisit:
		return true
	}
	return false
}

var transitions = map[Status][]Status{
	StatusFree:      {StatusPending, StatusCancelled},
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusDone},
}

// CanTransition reports whether the lifecycle allows from -> to.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition returns ErrConflict when from -> to is not allowed.
func Transition(from, to Status) error {
	if !CanTransition(from, to) {
		return apperr.ErrConflict.WithMessage(string(from) + " -> " + string(to))
	}
	return nil
}

// SourcesOf lists the states that may move to target.
func SourcesOf(target Status) []Status {
	var out []Status
	for _, from := range []Status{StatusFree, StatusPending, StatusConfirmed} {
		if CanTransition(from, target) {
			out = append(out, from)
		}
	}
	return out
}

// Terminal reports whether no transition leaves s.
func Terminal(s Status) bool {
	return len(transitions[s]) == 0
}

// DefaultSlotDuration applies when neither an end time nor a duration is given.
const DefaultSlotDuration = 30 * time.Minute

// SlotRequest describes a free slot to open. End wins over Duration when set.
type SlotRequest struct {
	Start    time.Time
	End      *time.Time
	Duration time.Duration
	Kind     Kind
}

// Slot is a validated free slot, ready to persist.
type Slot struct {
	Start           time.Time
	End             time.Time
	DurationMinutes int
	Kind            Kind
}

// NewSlot computes the slot bounds and validates the duration. Durations are
// truncated to whole minutes.
func NewSlot(req SlotRequest) (Slot, error) {
	d := req.Duration
	if req.End != nil {
		d = req.End.Sub(req.Start)
	} else if d == 0 {
		d = DefaultSlotDuration
	}
	minutes := int(d / time.Minute)
	if minutes <= 0 {
		return Slot{}, apperr.ErrInvalidDuration
	}
	kind := req.Kind
	if kind == "" {
		kind = KindInPerson
	}
	if !kind.Valid() {
		return Slot{}, apperr.ErrInvalidInput.WithMessage("unknown appointment type " + string(kind))
	}
	return Slot{
		Start:           req.Start,
		End:             req.Start.Add(time.Duration(minutes) * time.Minute),
		DurationMinutes: minutes,
		Kind:            kind,
	}, nil
}
