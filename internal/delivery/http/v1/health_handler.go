package v1

import (
	"net/http"

	"quantumworks-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(r gin.IRouter, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	r.GET("/health", handler.Check)
}

// Check godoc
// @Summary      Health check
// @Description  Reports service status and Redis reachability. Degraded still returns 200; Redis-backed features fall back to memory.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /v1/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, h.healthUC.Check(c.Request.Context()))
}
