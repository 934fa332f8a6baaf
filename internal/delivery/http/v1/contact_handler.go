package v1

import (
	"errors"
	"net/http"

	"quantumworks-backend/internal/delivery/http/response"
	"quantumworks-backend/internal/domain"
	"quantumworks-backend/pkg/apperror"
	"quantumworks-backend/pkg/contactform"
	"quantumworks-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

const (
	msgDispatchFailed = "Failed to send email. Please try again later."
	formSentLocation  = "/?sent=1#contact"
)

// SendEmailPath accepts POST only, OPTIONS included in the 405s
const SendEmailPath = "/api/send-email"

type ContactHandler struct {
	contactUC domain.ContactUsecase
	secLog    *security.SecurityLogger
}

// NewContactHandler registers the JSON relay and the site-root form capture
func NewContactHandler(r gin.IRouter, contactUC domain.ContactUsecase, secLog *security.SecurityLogger, limit gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
		secLog:    secLog,
	}

	r.POST(SendEmailPath, limit, handler.SendEmail)
	r.POST("/", limit, handler.CaptureForm)
}

// SendEmail godoc
// @Summary      Relay a contact message
// @Description  Validates the required fields and sends one email to the service mailbox.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      405      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/send-email [post]
func (h *ContactHandler) SendEmail(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	if err := h.contactUC.SendContactMessage(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			h.reject(c, security.EventValidationFailed, req.Email, "missing required fields")
			c.Error(apperror.BadRequest("Missing required fields"))
		default:
			h.reject(c, security.EventDispatchFailed, req.Email, "mail provider error")
			c.Error(apperror.Internal(msgDispatchFailed, err))
		}
		return
	}

	response.Success(c, http.StatusOK, "Email sent successfully")
}

// CaptureForm godoc
// @Summary      Capture the contact form
// @Description  Accepts the site's url-encoded contact form and redirects back to the page on success.
// @Tags         contact
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        form-name    formData  string  true   "Form discriminator, must be contact"
// @Param        bot-field    formData  string  false  "Honeypot, must be empty"
// @Param        name         formData  string  true   "Name"
// @Param        email        formData  string  true   "Email"
// @Param        projectType  formData  string  true   "Project type"
// @Param        message      formData  string  true   "Message"
// @Success      303
// @Failure      400  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       / [post]
func (h *ContactHandler) CaptureForm(c *gin.Context) {
	var fields contactform.Fields
	if err := c.ShouldBind(&fields); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	form := &domain.FormCapture{
		FormName: c.PostForm("form-name"),
		BotField: c.PostForm("bot-field"),
		Fields:   fields,
	}

	accepted, err := h.contactUC.CaptureForm(c.Request.Context(), form)
	if err != nil {
		var invalid *domain.InvalidFormError
		switch {
		case errors.Is(err, domain.ErrUnknownForm):
			h.reject(c, security.EventUnknownForm, fields.Email, "form-name="+form.FormName)
			c.Error(apperror.BadRequest("Unknown form"))
		case errors.As(err, &invalid):
			h.reject(c, security.EventValidationFailed, fields.Email, "client rules failed")
			c.Error(apperror.BadRequest("Invalid form submission").WithFields(invalid.Fields))
		default:
			h.reject(c, security.EventDispatchFailed, fields.Email, "mail provider error")
			c.Error(apperror.Internal(msgDispatchFailed, err))
		}
		return
	}
	if !accepted {
		h.reject(c, security.EventHoneypotTriggered, fields.Email, "bot-field filled")
	}

	c.Redirect(http.StatusSeeOther, formSentLocation)
}

func (h *ContactHandler) reject(c *gin.Context, event security.EventType, email, reason string) {
	h.secLog.LogSubmissionRejected(c.Request.Context(), event, email, c.ClientIP(), c.GetString(domain.KeyRequestID), reason)
}
