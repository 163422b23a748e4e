// Package handlers exposes the services over gin using the JSON envelope in
// utils.
package handlers

import (
	"github.com/gin-gonic/gin"

	"myhealth-server/internal/middleware"
	"myhealth-server/internal/services"
	"myhealth-server/internal/utils"
)

// currentActor reads the authenticated caller set by AuthMiddleware. It
// writes a 401 and returns false when there is none.
func currentActor(c *gin.Context) (services.Actor, bool) {
	id, okID := middleware.GetUserIDFromContext(c)
	role, okRole := middleware.GetUserRoleFromContext(c)
	if !okID || !okRole || id == "" {
		utils.Unauthorized(c, "User not authenticated")
		return services.Actor{}, false
	}
	return services.Actor{ID: id, Role: role}, true
}

// internalError records err for the request logger and answers a 500
// without leaking its text.
func internalError(c *gin.Context, message string, err error) {
	_ = c.Error(err)
	utils.InternalServerError(c, message)
}

// respond writes a service error in the request locale.
func respond(c *gin.Context, err error) {
	utils.RespondError(c, middleware.GetLocale(c), err)
}
