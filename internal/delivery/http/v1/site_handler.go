package v1

import (
	"net/http"
	"time"

	"quantumworks-backend/internal/domain"
	"quantumworks-backend/internal/site"
	"quantumworks-backend/pkg/contactform"

	"github.com/gin-gonic/gin"
)

type SiteHandler struct {
	siteName string
	content  *site.Content
}

// NewSiteHandler serves the landing page. The engine must already have the
// site templates loaded.
func NewSiteHandler(r gin.IRouter, siteName string, content *site.Content) {
	handler := &SiteHandler{
		siteName: siteName,
		content:  content,
	}

	r.GET("/", handler.Index)
}

// Index renders the landing page; ?sent=1 shows the success notice
func (h *SiteHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, site.IndexTemplate, gin.H{
		"SiteName":         h.siteName,
		"Content":          h.content,
		"ProjectTypes":     domain.ProjectTypes,
		"MinMessageLength": contactform.MinMessageLength,
		"Sent":             c.Query("sent") == "1",
		"Year":             time.Now().Year(),
	})
}
