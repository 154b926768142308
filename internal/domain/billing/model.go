package billing

import (
	"time"

	ierr "github.com/bohselecta/luvler-metering/internal/errors"
	"github.com/bohselecta/luvler-metering/internal/types"
)

// BillingRecord is the tier assignment for a user or an organization.
// User and org records live in separate key namespaces; an active org
// record supersedes the member's own record during tier resolution.
type BillingRecord struct {
	Tier      types.Tier               `json:"tier"`
	Status    types.SubscriptionStatus `json:"status"`
	OrgID     string                   `json:"org_id,omitempty"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// Grants reports whether this record actually confers its tier.
// A missing, trial or canceled record never grants anything; callers
// fall back to the free tier.
func (r *BillingRecord) Grants() bool {
	return r != nil && r.Status.IsActive() && r.Tier != ""
}

// Validate performs validation on the billing record
func (r *BillingRecord) Validate() error {
	if r.Tier == "" {
		return ierr.NewError("tier is required").
			WithHint("Please provide a tier").
			Mark(ierr.ErrValidation)
	}
	if err := r.Tier.Validate(); err != nil {
		return err
	}
	if err := r.Status.Validate(); err != nil {
		return err
	}
	return nil
}
