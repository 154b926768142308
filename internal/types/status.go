package types

import ierr "github.com/bohselecta/luvler-metering/internal/errors"

// SubscriptionStatus is the lifecycle status of a billing record.
// Only an active record grants its tier; anything else falls back to free.
type SubscriptionStatus string

const (
	SubscriptionStatusTrial    SubscriptionStatus = "trial"
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

func (s SubscriptionStatus) Validate() error {
	switch s {
	case SubscriptionStatusTrial, SubscriptionStatusActive, SubscriptionStatusCanceled:
		return nil
	default:
		return ierr.NewErrorf("invalid subscription status: %s", s).
			WithHint("Status must be one of trial, active or canceled").
			Mark(ierr.ErrValidation)
	}
}

func (s SubscriptionStatus) IsActive() bool {
	return s == SubscriptionStatusActive
}
