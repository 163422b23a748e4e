package handlers

import (
	"github.com/gin-gonic/gin"

	"myhealth-server/internal/i18n"
	"myhealth-server/internal/middleware"
	"myhealth-server/internal/services"
	"myhealth-server/internal/utils"
)

// ReminderHandler handles the caller's reminders.
type ReminderHandler struct {
	Reminders *services.ReminderService
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminders *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{Reminders: reminders}
}

// CreateReminderRequest represents a new reminder. Days is free text such as
// "Lun-Ven" or "Tous les jours".
type CreateReminderRequest struct {
	Title string `json:"title" binding:"required,max=100"`
	Time  string `json:"time" binding:"required"`
	Days  string `json:"days" binding:"max=50"`
}

func (h *ReminderHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	reminders, err := h.Reminders.List(c.Request.Context(), actor.ID)
	if err != nil {
		respond(c, err)
		return
	}
	utils.Success(c, "Reminders fetched successfully", reminders)
}

func (h *ReminderHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req CreateReminderRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	r, err := h.Reminders.Create(c.Request.Context(), actor.ID, req.Title, req.Time, req.Days)
	if err != nil {
		respond(c, err)
		return
	}
	utils.Created(c, i18n.T(middleware.GetLocale(c), "reminder.created"), r)
}

func (h *ReminderHandler) Toggle(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	r, err := h.Reminders.Toggle(c.Request.Context(), actor.ID, c.Param("id"))
	if err != nil {
		respond(c, err)
		return
	}
	utils.Success(c, i18n.T(middleware.GetLocale(c), "reminder.toggled"), r)
}

func (h *ReminderHandler) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := h.Reminders.Delete(c.Request.Context(), actor.ID, c.Param("id")); err != nil {
		respond(c, err)
		return
	}
	utils.Success(c, i18n.T(middleware.GetLocale(c), "reminder.deleted"), nil)
}
