// internal/handlers/common.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gamebazaar/gamebazaar-backend/internal/models"
	"github.com/gamebazaar/gamebazaar-backend/internal/services"
	"github.com/gamebazaar/gamebazaar-backend/internal/utils"
)

// actorFromContext resolves the authenticated actor set by the auth
// middleware. Handlers behind AuthRequired can rely on ok being true.
func actorFromContext(c *gin.Context) (services.Actor, bool) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return services.Actor{}, false
	}

	role := models.UserRoleUser
	if roleStr, ok := utils.GetUserRoleFromContext(c); ok {
		role = models.UserRole(roleStr)
	}

	return services.Actor{ID: userID, Role: role}, true
}

// viewerFromContext is the optional-auth variant: nil for anonymous
// requests.
func viewerFromContext(c *gin.Context) *services.Actor {
	actor, ok := actorFromContext(c)
	if !ok {
		return nil
	}
	return &actor
}
