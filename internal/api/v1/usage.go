package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bohselecta/luvler-metering/internal/logger"
	"github.com/bohselecta/luvler-metering/internal/service"
	"github.com/bohselecta/luvler-metering/internal/types"
)

type UsageHandler struct {
	service service.UsageService
	log     *logger.Logger
}

func NewUsageHandler(service service.UsageService, log *logger.Logger) *UsageHandler {
	return &UsageHandler{service: service, log: log}
}

// @Summary Get current usage
// @Description Get the caller's current-month usage against their limit
// @Tags Usage
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UsageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /usage [get]
func (h *UsageHandler) GetUsage(c *gin.Context) {
	ctx := c.Request.Context()
	userID := types.GetUserID(ctx)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	resp, err := h.service.GetUsage(ctx, userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get usage history
// @Description Get the caller's persisted usage months, most recent first
// @Tags Usage
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UsageHistoryResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /usage/history [get]
func (h *UsageHandler) GetUsageHistory(c *gin.Context) {
	ctx := c.Request.Context()
	userID := types.GetUserID(ctx)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	resp, err := h.service.GetUsageHistory(ctx, userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
