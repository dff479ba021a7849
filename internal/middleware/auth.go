package middleware

import (
	"net/http"

	"inkpost/internal/logger"
	"inkpost/internal/models"
	"inkpost/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	CurrentUserKey = "user"
	IsAdminKey     = "is_admin"
)

// LoadUser resolves the session's user on every request and stores it,
// together with its admin flag, in the gin context.
func LoadUser(auth *services.AuthService, gate *services.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.CurrentUser(c.Request.Context(), sessions.Default(c))
		if err != nil {
			logger.FromContext(c.Request.Context()).Err(err).Msg("loading current user")
		}
		if user != nil {
			c.Set(CurrentUserKey, user)
		}
		c.Set(IsAdminKey, gate.IsAuthorized(user))
		c.Next()
	}
}

// CurrentUser returns the user LoadUser stored, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// AuthRequired sends anonymous visitors to the login page.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly lets only gate-authorized users through. Everyone else,
// anonymous visitors included, gets denied (a plain 403 when denied is nil)
// before the route handler looks anything up.
func AdminOnly(gate *services.Gate, denied gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if gate.IsAuthorized(CurrentUser(c)) {
			c.Next()
			return
		}
		if denied == nil {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		denied(c)
		c.Abort()
	}
}
