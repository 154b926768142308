package dto

import (
	"time"

	"github.com/bohselecta/luvler-metering/internal/domain/billing"
	"github.com/bohselecta/luvler-metering/internal/types"
	"github.com/bohselecta/luvler-metering/internal/validator"
)

// SetTierRequest is the administrative payload assigning a tier to a user
// or an organization
type SetTierRequest struct {
	Tier   string `json:"tier" binding:"required" validate:"required" example:"clinic"`
	Status string `json:"status" binding:"required" validate:"required" example:"active"`
}

// Validate rejects unknown tiers and statuses before any store access
func (r *SetTierRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := types.Tier(r.Tier).Validate(); err != nil {
		return err
	}
	if err := types.SubscriptionStatus(r.Status).Validate(); err != nil {
		return err
	}
	return nil
}

// ToBillingRecord converts the request to a domain billing record.
// orgID is empty for individual user records.
func (r *SetTierRequest) ToBillingRecord(orgID string) *billing.BillingRecord {
	return &billing.BillingRecord{
		Tier:      types.Tier(r.Tier),
		Status:    types.SubscriptionStatus(r.Status),
		OrgID:     orgID,
		UpdatedAt: time.Now().UTC(),
	}
}

// SubscriptionResponse represents a billing record together with the
// allowance its tier grants
type SubscriptionResponse struct {
	UserID    string                   `json:"user_id,omitempty"`
	OrgID     string                   `json:"org_id,omitempty"`
	Tier      types.Tier               `json:"tier" example:"clinic"`
	Status    types.SubscriptionStatus `json:"status" example:"active"`
	Limit     int64                    `json:"limit" example:"400"`
	UpdatedAt time.Time                `json:"updated_at"`
}
