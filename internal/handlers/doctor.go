package handlers

import (
	"github.com/gin-gonic/gin"

	"myhealth-server/internal/i18n"
	"myhealth-server/internal/middleware"
	"myhealth-server/internal/services"
	"myhealth-server/internal/utils"
)

// DoctorHandler serves the doctor's dashboard, agenda, patient records and
// alert queue.
type DoctorHandler struct {
	Doctor   *services.DoctorService
	Agenda   *services.AgendaService
	AlertSvc *services.AlertService
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(doctor *services.DoctorService, agenda *services.AgendaService, alerts *services.AlertService) *DoctorHandler {
	return &DoctorHandler{Doctor: doctor, Agenda: agenda, AlertSvc: alerts}
}

func (h *DoctorHandler) Dashboard(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	dash, err := h.Doctor.Dashboard(c.Request.Context(), actor)
	if err != nil {
		respond(c, err)
		return
	}
	utils.Success(c, "Dashboard fetched successfully", dash)
}

// DayAgenda returns the day view for ?date=YYYY-MM-DD, today when absent or
// malformed.
func (h *DoctorHandler) DayAgenda(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	view, err := h.Agenda.DayViewFor(c.Request.Context(), actor, c.Query("date"), middleware.GetLocale(c))
	if err != nil {
		respond(c, err)
		return
	}
	utils.Success(c, "Agenda fetched successfully", view)
}

func (h *DoctorHandler) Patients(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	patients, err := h.Doctor.Patients(c.Request.Context(), actor)
	if err != nil {
		respond(c, err)
		return
	}
	utils.Success(c, "Patients fetched successfully", patients)
}

func (h *DoctorHandler) PatientHistory(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	record, err := h.Doctor.PatientHistory(c.Request.Context(), actor, c.Param("id"), middleware.GetLocale(c))
	if err != nil {
		respond(c, err)
		return
	}
	utils.Success(c, "Patient history fetched successfully", record)
}

// Alerts lists the open alerts, newest reading first.
func (h *DoctorHandler) Alerts(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	alerts, err := h.AlertSvc.Open(c.Request.Context(), actor)
	if err != nil {
		respond(c, err)
		return
	}
	utils.Success(c, "Alerts fetched successfully", alerts)
}

func (h *DoctorHandler) AcknowledgeAlert(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	alert, err := h.AlertSvc.Acknowledge(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respond(c, err)
		return
	}
	utils.Success(c, i18n.T(middleware.GetLocale(c), "alert.acknowledged"), alert)
}
