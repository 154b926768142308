package types

import (
	"github.com/shopspring/decimal"

	ierr "github.com/bohselecta/luvler-metering/internal/errors"
)

// Tier is a named entitlement level determining the monthly credit allowance
type Tier string

const (
	TierFree       Tier = "free"
	TierIndividual Tier = "individual"
	TierClinician  Tier = "clinician"
	TierClinic     Tier = "clinic"
	TierEnterprise Tier = "enterprise"
)

// DefaultMonthlyLimit is the conservative fallback allowance applied when a
// billing record references a tier with no configured allowance.
const DefaultMonthlyLimit int64 = 5

func (t Tier) String() string {
	return string(t)
}

func (t Tier) Validate() error {
	if _, ok := DefinitionFor(t); !ok {
		return ierr.NewErrorf("invalid tier: %s", t).
			WithHint("Tier must be one of free, individual, clinician, clinic or enterprise").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TierDefinition is the static, versioned configuration for a tier.
// It is data, not logic: allowance changes never touch the gate's decision code.
type TierDefinition struct {
	ID               Tier            `json:"id"`
	Name             string          `json:"name"`
	PriceMonthly     decimal.Decimal `json:"price_monthly"`
	AnalysesPerMonth int64           `json:"analyses_per_month"`
	Seats            int             `json:"seats"`
	Features         []string        `json:"features"`
}

var tierCatalog = []TierDefinition{
	{
		ID:               TierFree,
		Name:             "Free",
		PriceMonthly:     decimal.Zero,
		AnalysesPerMonth: 5,
		Seats:            1,
		Features:         []string{"goal_planning", "reflections"},
	},
	{
		ID:               TierIndividual,
		Name:             "Individual",
		PriceMonthly:     decimal.NewFromInt(9),
		AnalysesPerMonth: 50,
		Seats:            1,
		Features:         []string{"goal_planning", "reflections", "ai_analysis"},
	},
	{
		ID:               TierClinician,
		Name:             "Clinician",
		PriceMonthly:     decimal.NewFromInt(29),
		AnalysesPerMonth: 150,
		Seats:            1,
		Features:         []string{"goal_planning", "reflections", "ai_analysis", "client_workspaces"},
	},
	{
		ID:               TierClinic,
		Name:             "Clinic",
		PriceMonthly:     decimal.NewFromInt(99),
		AnalysesPerMonth: 400,
		Seats:            10,
		Features:         []string{"goal_planning", "reflections", "ai_analysis", "client_workspaces", "org_admin"},
	},
	{
		ID:               TierEnterprise,
		Name:             "Enterprise",
		PriceMonthly:     decimal.NewFromInt(299),
		AnalysesPerMonth: 1500,
		Seats:            50,
		Features:         []string{"goal_planning", "reflections", "ai_analysis", "client_workspaces", "org_admin", "sso"},
	},
}

// TierCatalog returns the static tier definitions in display order
func TierCatalog() []TierDefinition {
	catalog := make([]TierDefinition, len(tierCatalog))
	copy(catalog, tierCatalog)
	return catalog
}

// DefinitionFor looks up the definition for a tier
func DefinitionFor(tier Tier) (TierDefinition, bool) {
	for _, def := range tierCatalog {
		if def.ID == tier {
			return def, true
		}
	}
	return TierDefinition{}, false
}

// LimitFor returns the monthly credit allowance for a tier.
// Unknown tiers and tiers without a configured allowance get the
// default fallback so a stale billing record can never grant
// unlimited usage.
func LimitFor(tier Tier) int64 {
	def, ok := DefinitionFor(tier)
	if !ok || def.AnalysesPerMonth <= 0 {
		return DefaultMonthlyLimit
	}
	return def.AnalysesPerMonth
}
