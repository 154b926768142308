package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bohselecta/luvler-metering/internal/api/dto"
	ierr "github.com/bohselecta/luvler-metering/internal/errors"
	"github.com/bohselecta/luvler-metering/internal/logger"
	"github.com/bohselecta/luvler-metering/internal/service"
	"github.com/bohselecta/luvler-metering/internal/types"
)

type MeteringHandler struct {
	service service.MeteringService
	log     *logger.Logger
}

func NewMeteringHandler(service service.MeteringService, log *logger.Logger) *MeteringHandler {
	return &MeteringHandler{service: service, log: log}
}

// @Summary Check the metering gate
// @Description Decide whether the caller may perform a credit-consuming operation. Anonymous callers are admitted unmetered.
// @Tags Metering
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CheckResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /metering/check [post]
func (h *MeteringHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()
	decision := h.service.Check(ctx, types.GetUserID(ctx), types.GetOrgID(ctx))

	if !decision.Allowed() {
		c.Error(ierr.NewError("monthly generation limit reached").
			WithHint("You've used all analyses included in your plan this month. Upgrade to continue.").
			WithReportableDetails(map[string]any{
				"code":  ierr.ErrCodeLimitExceeded,
				"limit": decision.Limit,
				"used":  decision.Used,
			}).
			Mark(ierr.ErrLimitExceeded))
		return
	}

	c.JSON(http.StatusOK, &dto.CheckResponse{
		Admitted: true,
		Skipped:  decision.Outcome == service.OutcomeSkipped,
		Tier:     decision.Tier,
		Limit:    decision.Limit,
		Used:     decision.Used,
	})
}

// @Summary Record a consumed credit
// @Description Count one successful generation against the caller's monthly allowance. Best-effort: a failed write never fails the request.
// @Tags Metering
// @Produce json
// @Security BearerAuth
// @Success 202 {object} dto.RecordResponse
// @Router /metering/record [post]
func (h *MeteringHandler) Record(c *gin.Context) {
	ctx := c.Request.Context()
	userID := types.GetUserID(ctx)

	// anonymous generations are unmetered, nothing to count
	if userID != "" {
		h.service.RecordSuccess(ctx, userID)
	}

	c.JSON(http.StatusAccepted, &dto.RecordResponse{Accepted: userID != ""})
}
