package dto

import (
	"github.com/shopspring/decimal"

	"github.com/bohselecta/luvler-metering/internal/types"
)

// TierResponse represents one tier of the catalog with its effective allowance
type TierResponse struct {
	ID               string          `json:"id" example:"individual"`
	Name             string          `json:"name" example:"Individual"`
	PriceMonthly     decimal.Decimal `json:"price_monthly"`
	AnalysesPerMonth int64           `json:"analyses_per_month" example:"50"`
	Seats            int             `json:"seats" example:"1"`
	Features         []string        `json:"features"`
}

// ListTiersResponse represents the full tier catalog
type ListTiersResponse struct {
	Items []*TierResponse `json:"items"`
	Total int             `json:"total"`
}

// ToTierResponse converts a tier definition to its response shape.
// allowance is the effective monthly allowance after config overrides.
func ToTierResponse(def types.TierDefinition, allowance int64) *TierResponse {
	return &TierResponse{
		ID:               def.ID.String(),
		Name:             def.Name,
		PriceMonthly:     def.PriceMonthly,
		AnalysesPerMonth: allowance,
		Seats:            def.Seats,
		Features:         def.Features,
	}
}
