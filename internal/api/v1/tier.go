package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bohselecta/luvler-metering/internal/logger"
	"github.com/bohselecta/luvler-metering/internal/service"
)

type TierHandler struct {
	service service.TierService
	log     *logger.Logger
}

func NewTierHandler(service service.TierService, log *logger.Logger) *TierHandler {
	return &TierHandler{service: service, log: log}
}

// @Summary List tiers
// @Description Get the tier catalog with effective monthly allowances
// @Tags Tiers
// @Produce json
// @Success 200 {object} dto.ListTiersResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tiers [get]
func (h *TierHandler) ListTiers(c *gin.Context) {
	resp, err := h.service.ListTiers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
