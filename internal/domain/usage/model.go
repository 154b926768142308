package usage

import (
	"time"

	ierr "github.com/bohselecta/luvler-metering/internal/errors"
	"github.com/bohselecta/luvler-metering/internal/types"
)

// UsageRecord counts the generation credits a user has consumed in one UTC
// calendar month. No record exists until the first increment; reads
// synthesize a zero record without persisting it. Old months are never
// deleted, they just stop being read.
type UsageRecord struct {
	UserID    string       `json:"user_id"`
	Period    types.Period `json:"period"`
	Used      int64        `json:"used"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewUsageRecord returns the implicit zero record for a (user, period) pair
func NewUsageRecord(userID string, period types.Period) *UsageRecord {
	return &UsageRecord{
		UserID:    userID,
		Period:    period,
		Used:      0,
		UpdatedAt: time.Now().UTC(),
	}
}

// Validate performs validation on the usage record
func (r *UsageRecord) Validate() error {
	if r.UserID == "" {
		return ierr.NewError("user_id is required").
			WithHint("Please provide a user ID").
			Mark(ierr.ErrValidation)
	}
	if r.Period.IsZero() {
		return ierr.NewError("period is required").
			WithHint("Please provide a usage period").
			Mark(ierr.ErrValidation)
	}
	if r.Used < 0 {
		return ierr.NewErrorf("used must be non-negative, got %d", r.Used).
			Mark(ierr.ErrValidation)
	}
	return nil
}
