package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bohselecta/luvler-metering/internal/logger"
)

type HealthHandler struct {
	log *logger.Logger
}

func NewHealthHandler(log *logger.Logger) *HealthHandler {
	return &HealthHandler{log: log}
}

// @Summary Health check
// @Description Health check endpoint
// @Tags Health
// @Produce json
// @Success 200 {object} gin.H
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
