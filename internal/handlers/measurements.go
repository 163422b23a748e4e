package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"myhealth-server/internal/apperr"
	"myhealth-server/internal/i18n"
	"myhealth-server/internal/middleware"
	"myhealth-server/internal/services"
	"myhealth-server/internal/utils"
	"myhealth-server/internal/vitals"
)

// MeasurementHandler handles a patient's own readings and advice.
type MeasurementHandler struct {
	Measurements *services.MeasurementService
}

// NewMeasurementHandler creates a new MeasurementHandler.
func NewMeasurementHandler(measurements *services.MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{Measurements: measurements}
}

// SubmitMeasurementRequest represents a new reading. Value2 is the diastolic
// pressure and only allowed for "tension".
type SubmitMeasurementRequest struct {
	Type   string   `json:"type" binding:"required"`
	Value1 float64  `json:"value1" binding:"required"`
	Value2 *float64 `json:"value2"`
	Notes  string   `json:"notes" binding:"max=2000"`
}

// Submit records a reading, averaging it into the previous one of the same
// type when it falls in the merge window.
func (h *MeasurementHandler) Submit(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req SubmitMeasurementRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	out, err := h.Measurements.Submit(c.Request.Context(), actor.ID, services.Submission{
		Kind:      vitals.Kind(req.Type),
		Primary:   req.Value1,
		Secondary: req.Value2,
		Notes:     req.Notes,
	})
	if err != nil {
		respond(c, err)
		return
	}

	loc := middleware.GetLocale(c)
	view := services.NewMeasurementView(*out.Measurement)
	if out.Action == services.ActionCreated {
		utils.Created(c, i18n.T(loc, "measurement.created"), gin.H{"action": out.Action, "measurement": view})
		return
	}
	utils.Success(c, i18n.T(loc, "measurement.updated"), gin.H{"action": out.Action, "measurement": view})
}

// List returns the latest readings, optionally of one type.
// Query: type, limit (default 8).
func (h *MeasurementHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	kind := vitals.Kind(c.Query("type"))
	if kind != "" && !kind.Valid() {
		respond(c, apperr.ErrInvalidKind.WithMessage(string(kind)))
		return
	}

	limit := services.DefaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respond(c, apperr.ErrInvalidInput.WithMessage("limit"))
			return
		}
		limit = n
	}

	views, err := h.Measurements.Recent(c.Request.Context(), actor.ID, kind, limit)
	if err != nil {
		respond(c, err)
		return
	}
	utils.Success(c, "Measurements fetched successfully", views)
}

// History returns every reading with the advice and the chart series.
func (h *MeasurementHandler) History(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	history, err := h.Measurements.History(c.Request.Context(), actor.ID, services.PatientChartPerKind, middleware.GetLocale(c))
	if err != nil {
		respond(c, err)
		return
	}
	utils.Success(c, "History fetched successfully", history)
}

// Advice returns the advice cards for the latest readings.
func (h *MeasurementHandler) Advice(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	entries, snap, err := h.Measurements.Advice(c.Request.Context(), actor.ID, middleware.GetLocale(c))
	if err != nil {
		respond(c, err)
		return
	}
	utils.Success(c, "Advice generated successfully", gin.H{"advice": entries, "latest": snap})
}

// Delete removes one of the caller's readings.
func (h *MeasurementHandler) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := h.Measurements.Delete(c.Request.Context(), actor.ID, c.Param("id")); err != nil {
		respond(c, err)
		return
	}
	utils.Success(c, i18n.T(middleware.GetLocale(c), "measurement.deleted"), nil)
}
