package handlers

import (
	"errors"
	"net/http"

	"inkpost/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerForm struct {
	Email    string `form:"email"`
	Name     string `form:"name"`
	Password string `form:"password"`
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "register.html", gin.H{"Form": registerForm{}})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "register.html", gin.H{"Form": form, "Error": "Invalid form submission."})
		return
	}

	_, err := h.auth.Register(c.Request.Context(), sessions.Default(c), form.Email, form.Name, form.Password)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, "/")
	case errors.Is(err, services.ErrDuplicateEmail):
		addFlash(c, "You've already signed up with this email, login instead")
		c.Redirect(http.StatusFound, "/login")
	case errors.Is(err, services.ErrValidation):
		field, message, _ := fieldError(err)
		form.Password = ""
		Render(c, http.StatusBadRequest, "register.html", gin.H{"Form": form, "Field": field, "Error": message})
	default:
		handleError(c, err)
	}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "login.html", gin.H{"Form": loginForm{}})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "login.html", gin.H{"Form": form, "Error": "Invalid form submission."})
		return
	}

	_, err := h.auth.Login(c.Request.Context(), sessions.Default(c), form.Email, form.Password)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, "/")
	case errors.Is(err, services.ErrInvalidCredentials):
		form.Password = ""
		Render(c, http.StatusUnauthorized, "login.html", gin.H{"Form": form, "Error": "Invalid email or password"})
	default:
		handleError(c, err)
	}
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(sessions.Default(c)); err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}
