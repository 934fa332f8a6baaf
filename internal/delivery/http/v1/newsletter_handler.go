package v1

import (
	"errors"
	"net/http"

	"quantumworks-backend/internal/delivery/http/response"
	"quantumworks-backend/internal/domain"
	"quantumworks-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const msgInvalidEmail = "Please enter a valid email address"

type NewsletterHandler struct {
	newsletterUC domain.NewsletterUsecase
}

func NewNewsletterHandler(r gin.IRouter, newsletterUC domain.NewsletterUsecase, limit gin.HandlerFunc) {
	handler := &NewsletterHandler{newsletterUC: newsletterUC}

	r.POST("/newsletter", limit, handler.Subscribe)
}

// Subscribe godoc
// @Summary      Subscribe to the newsletter
// @Description  Adds an address to the newsletter list. Subscribing twice is not an error.
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        request  body      domain.NewsletterRequest  true  "Subscriber"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /v1/newsletter [post]
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req domain.NewsletterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(apperror.BadRequest(msgInvalidEmail))
		return
	}

	created, err := h.newsletterUC.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEmail) {
			c.Error(apperror.BadRequest(msgInvalidEmail))
			return
		}
		c.Error(apperror.Internal("Failed to subscribe. Please try again.", err))
		return
	}

	if !created {
		response.Success(c, http.StatusOK, "Already subscribed")
		return
	}
	response.Success(c, http.StatusOK, "Subscribed successfully")
}
