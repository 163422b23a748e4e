package handlers

import (
	"github.com/gin-gonic/gin"

	"myhealth-server/internal/models"
	"myhealth-server/internal/services"
	"myhealth-server/internal/utils"
)

// UserHandler handles user directory requests.
type UserHandler struct {
	Users services.UserRepository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.UserRepository) *UserHandler {
	return &UserHandler{Users: users}
}

// GetDoctors lists every doctor, for patients picking whom to book with.
func (h *UserHandler) GetDoctors(c *gin.Context) {
	doctors, err := h.Users.ListByRole(c.Request.Context(), models.RoleDoctor)
	if err != nil {
		internalError(c, "Failed to fetch doctors", err)
		return
	}

	sanitized := make([]models.UserSanitized, len(doctors))
	for i, u := range doctors {
		sanitized[i] = u.Sanitize()
	}
	utils.Success(c, "Doctors fetched successfully", sanitized)
}
