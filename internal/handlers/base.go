package handlers

import (
	"errors"
	"net/http"

	"inkpost/internal/logger"
	"inkpost/internal/middleware"
	"inkpost/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const genericFailure = "Something went wrong. Please try again later."

// Render injects the common page variables: current user, admin flag,
// pending flash messages and the current path.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user := middleware.CurrentUser(c); user != nil {
		obj["CurrentUser"] = user
	}
	obj["IsAdmin"] = c.GetBool(middleware.IsAdminKey)
	obj["Flashes"] = takeFlashes(c)
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderError renders the error page with message.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Code": code, "Error": message})
}

// Forbidden is the denial page used by middleware.AdminOnly.
func Forbidden(c *gin.Context) {
	RenderError(c, http.StatusForbidden, "You are not allowed to do that.")
}

// NotFound renders the 404 page.
func NotFound(c *gin.Context) {
	RenderError(c, http.StatusNotFound, "Page not found.")
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusFound
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDeliveryFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleError answers a failed request. Unauthenticated requests go to the
// login page; internal failures are logged and shown generically.
func handleError(c *gin.Context, err error) {
	code := statusFor(err)
	switch code {
	case http.StatusFound:
		addFlash(c, "You need to login or register to do that.")
		c.Redirect(http.StatusFound, "/login")
	case http.StatusNotFound:
		NotFound(c)
	case http.StatusForbidden:
		Forbidden(c)
	case http.StatusBadGateway:
		logger.FromContext(c.Request.Context()).Err(err).Msg("upstream failure")
		RenderError(c, code, "Your message could not be sent. Please try again later.")
	case http.StatusInternalServerError:
		_ = c.Error(err)
		logger.FromContext(c.Request.Context()).Err(err).Msg("request failed")
		RenderError(c, code, genericFailure)
	default:
		RenderError(c, code, err.Error())
	}
}

// fieldError extracts the field and message of a validation failure.
func fieldError(err error) (field, message string, ok bool) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return verr.Field, verr.Message, true
	}
	return "", "", false
}

func addFlash(c *gin.Context, message string) {
	sess := sessions.Default(c)
	sess.AddFlash(message)
	if err := sess.Save(); err != nil {
		logger.FromContext(c.Request.Context()).Err(err).Msg("saving flash")
	}
}

func takeFlashes(c *gin.Context) []string {
	sess := sessions.Default(c)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(); err != nil {
		logger.FromContext(c.Request.Context()).Err(err).Msg("saving session")
	}

	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
