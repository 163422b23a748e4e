package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"myhealth-server/internal/agenda"
	"myhealth-server/internal/i18n"
	"myhealth-server/internal/middleware"
	"myhealth-server/internal/models"
	"myhealth-server/internal/services"
	"myhealth-server/internal/utils"
)

// AppointmentHandler handles slot publishing, booking and the status
// lifecycle of appointments.
type AppointmentHandler struct {
	Agenda *services.AgendaService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(agenda *services.AgendaService) *AppointmentHandler {
	return &AppointmentHandler{Agenda: agenda}
}

// CreateSlotRequest represents a free slot opened by a doctor. EndTime wins
// over Duration (minutes) when both are set; neither means 30 minutes.
type CreateSlotRequest struct {
	StartTime time.Time  `json:"startTime" binding:"required"`
	EndTime   *time.Time `json:"endTime"`
	Duration  int        `json:"duration" binding:"omitempty,max=720"`
	Type      string     `json:"type" binding:"omitempty,oneof=cabinet visio domicile"`
}

// CreateSlot handles a doctor opening a free slot.
func (h *AppointmentHandler) CreateSlot(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req CreateSlotRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	slot, err := h.Agenda.CreateSlot(c.Request.Context(), actor, agenda.SlotRequest{
		Start:    req.StartTime,
		End:      req.EndTime,
		Duration: time.Duration(req.Duration) * time.Minute,
		Kind:     agenda.Kind(req.Type),
	})
	if err != nil {
		respond(c, err)
		return
	}
	utils.Created(c, i18n.T(middleware.GetLocale(c), "slot.created"), slot)
}

// BookSlotRequest carries the patient's reason for the visit.
type BookSlotRequest struct {
	Reason string `json:"reason" binding:"max=2000"`
}

// BookSlot handles a patient claiming a free slot.
func (h *AppointmentHandler) BookSlot(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req BookSlotRequest
	if c.Request.ContentLength > 0 && !utils.BindAndValidate(c, &req) {
		return
	}

	a, err := h.Agenda.BookSlot(c.Request.Context(), actor, c.Param("id"), req.Reason)
	if err != nil {
		respond(c, err)
		return
	}
	utils.Success(c, i18n.T(middleware.GetLocale(c), "booking.sent"), a)
}

// AcceptRequest optionally carries the link of a video consultation.
type AcceptRequest struct {
	VideoLink string `json:"videoLink" binding:"omitempty,url,max=255"`
}

// Accept handles a doctor confirming a pending request.
func (h *AppointmentHandler) Accept(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req AcceptRequest
	if c.Request.ContentLength > 0 && !utils.BindAndValidate(c, &req) {
		return
	}

	a, err := h.Agenda.Accept(c.Request.Context(), actor, c.Param("id"), req.VideoLink)
	if err != nil {
		respond(c, err)
		return
	}
	utils.Success(c, i18n.T(middleware.GetLocale(c), "appointment.confirmed"), a)
}

// Reject handles a doctor refusing a request or withdrawing a free slot.
func (h *AppointmentHandler) Reject(c *gin.Context) {
	h.transition(c, h.Agenda.Reject, "appointment.cancelled")
}

// Complete handles a doctor closing a confirmed appointment.
func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.Agenda.Complete, "appointment.done")
}

// Cancel handles either party cancelling a booked appointment.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.Agenda.Cancel, "appointment.cancelled")
}

type transitionFunc func(ctx context.Context, actor services.Actor, id string) (*models.Appointment, error)

func (h *AppointmentHandler) transition(c *gin.Context, op transitionFunc, messageKey string) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	a, err := op(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respond(c, err)
		return
	}
	utils.Success(c, i18n.T(middleware.GetLocale(c), messageKey), a)
}

// GetAppointmentsForUser lists the caller's appointments: slots a doctor
// owns, or the bookings of a patient.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	list, err := h.Agenda.ListFor(c.Request.Context(), actor)
	if err != nil {
		respond(c, err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", list)
}

// GetFreeSlots lists future free slots grouped by day, optionally for one
// doctor (?doctorId=).
func (h *AppointmentHandler) GetFreeSlots(c *gin.Context) {
	days, err := h.Agenda.FreeSlots(c.Request.Context(), c.Query("doctorId"))
	if err != nil {
		respond(c, err)
		return
	}
	utils.Success(c, "Free slots fetched successfully", days)
}
