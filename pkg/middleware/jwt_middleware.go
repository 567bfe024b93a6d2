package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aitravel/internal/models/db_models"
	"aitravel/internal/services"
	"aitravel/pkg/utils"
)

const userKey = "user"

// RequireUser resolves the bearer token before the handler runs and aborts
// with 401 when no user can be resolved.
func RequireUser(identity services.IdentityServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := identity.ResolveUser(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			utils.HandleServiceError(c, err)
			c.Abort()
			return
		}
		if user == nil {
			utils.RespondError(c, http.StatusUnauthorized, "Authentication required: missing, invalid or expired token")
			c.Abort()
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireUser, or nil.
func CurrentUser(c *gin.Context) *db_models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*db_models.User)
	return user
}
