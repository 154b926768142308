package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bohselecta/luvler-metering/internal/api/dto"
	"github.com/bohselecta/luvler-metering/internal/logger"
	"github.com/bohselecta/luvler-metering/internal/service"
)

type BillingHandler struct {
	service service.BillingService
	log     *logger.Logger
}

func NewBillingHandler(service service.BillingService, log *logger.Logger) *BillingHandler {
	return &BillingHandler{service: service, log: log}
}

// @Summary Set a user's tier
// @Description Assign a tier and status to a user
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminKeyAuth
// @Param id path string true "User ID"
// @Param request body dto.SetTierRequest true "Tier assignment"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/users/{id}/tier [put]
func (h *BillingHandler) SetUserTier(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	var req dto.SetTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.SetTierForUser(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Set an organization's tier
// @Description Assign a tier and status to an organization. While active it supersedes every member's individual tier.
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminKeyAuth
// @Param id path string true "Organization ID"
// @Param request body dto.SetTierRequest true "Tier assignment"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/orgs/{id}/tier [put]
func (h *BillingHandler) SetOrgTier(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	var req dto.SetTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.SetTierForOrg(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a user's subscription
// @Description Get a user's billing record and effective limit
// @Tags Admin
// @Produce json
// @Security AdminKeyAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/subscription [get]
func (h *BillingHandler) GetUserSubscription(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	resp, err := h.service.GetSubscriptionForUser(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get an organization's subscription
// @Description Get an organization's billing record and effective limit
// @Tags Admin
// @Produce json
// @Security AdminKeyAuth
// @Param id path string true "Organization ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/orgs/{id}/subscription [get]
func (h *BillingHandler) GetOrgSubscription(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	resp, err := h.service.GetSubscriptionForOrg(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
