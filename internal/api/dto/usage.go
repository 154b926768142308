package dto

import (
	"time"

	"github.com/bohselecta/luvler-metering/internal/domain/usage"
	"github.com/bohselecta/luvler-metering/internal/types"
)

// UsageResponse represents the caller's current-month usage against their limit
type UsageResponse struct {
	Period    types.Period `json:"period"`
	Tier      types.Tier   `json:"tier" example:"individual"`
	Used      int64        `json:"used" example:"10"`
	Limit     int64        `json:"limit" example:"50"`
	Remaining int64        `json:"remaining" example:"40"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// UsagePeriodResponse represents one persisted month of usage history
type UsagePeriodResponse struct {
	Period    types.Period `json:"period"`
	Used      int64        `json:"used"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// UsageHistoryResponse represents a user's persisted usage months
type UsageHistoryResponse struct {
	Items []*UsagePeriodResponse `json:"items"`
	Total int                    `json:"total"`
}

// ToUsagePeriodResponse converts a domain usage record to its history shape
func ToUsagePeriodResponse(r *usage.UsageRecord) *UsagePeriodResponse {
	return &UsagePeriodResponse{
		Period:    r.Period,
		Used:      r.Used,
		UpdatedAt: r.UpdatedAt,
	}
}
