package handlers

import (
	"net/http"

	"inkpost/internal/services"

	"github.com/gin-gonic/gin"
)

// PageHandler serves the about page and the contact form.
type PageHandler struct {
	mail *services.MailService
}

func NewPageHandler(mail *services.MailService) *PageHandler {
	return &PageHandler{mail: mail}
}

func (h *PageHandler) About(c *gin.Context) {
	Render(c, http.StatusOK, "about.html", nil)
}

func (h *PageHandler) ShowContact(c *gin.Context) {
	Render(c, http.StatusOK, "contact.html", gin.H{"IsSent": false, "Form": services.ContactMessage{}})
}

func (h *PageHandler) Contact(c *gin.Context) {
	var msg services.ContactMessage
	if err := c.ShouldBind(&msg); err != nil {
		Render(c, http.StatusBadRequest, "contact.html", gin.H{"Form": msg, "Error": "Invalid form submission."})
		return
	}

	if err := msg.Validate(); err != nil {
		field, message, _ := fieldError(err)
		Render(c, http.StatusBadRequest, "contact.html", gin.H{"Form": msg, "Field": field, "Error": message})
		return
	}

	// delivery failures map to 502 in handleError
	if err := h.mail.SendContactMessage(c.Request.Context(), msg); err != nil {
		handleError(c, err)
		return
	}
	Render(c, http.StatusOK, "contact.html", gin.H{"IsSent": true, "Form": services.ContactMessage{}})
}
