package service

import (
	"context"

	"github.com/bohselecta/luvler-metering/internal/types"
)

// Outcome is the result of a metering gate check
type Outcome string

const (
	// OutcomeAdmitted means the caller may perform the metered operation
	OutcomeAdmitted Outcome = "admitted"
	// OutcomeRejected means the caller's monthly allowance is exhausted
	OutcomeRejected Outcome = "rejected"
	// OutcomeSkipped means the caller is anonymous and metering does not apply
	OutcomeSkipped Outcome = "skipped"
	// OutcomeIndeterminate means usage could not be read; policy is to
	// admit rather than block the caller on infrastructure failure
	OutcomeIndeterminate Outcome = "indeterminate"
)

// Decision is the gate's verdict for one credit-consuming request
type Decision struct {
	Outcome Outcome
	Tier    types.Tier
	Limit   int64
	Used    int64
}

// Allowed reports whether the caller may proceed. Every outcome except an
// explicit rejection allows the request: metering never blocks on its own
// failures, only on an exhausted allowance.
func (d Decision) Allowed() bool {
	return d.Outcome != OutcomeRejected
}

// MeteringService is the gate consulted by every credit-consuming route
type MeteringService interface {
	// Check resolves the caller's tier and current usage and decides
	// whether the metered operation may proceed. It never returns an
	// error: infrastructure failures produce an Indeterminate decision,
	// which is allowed by policy.
	Check(ctx context.Context, userID, orgID string) Decision

	// RecordSuccess counts one consumed credit after the metered operation
	// succeeded. It must only be called on success, and never for
	// anonymous callers. Failures are logged and swallowed; the worst
	// case is an undercount.
	RecordSuccess(ctx context.Context, userID string)
}

type meteringService struct {
	ServiceParams
	tier  TierService
	usage UsageService
}

func NewMeteringService(params ServiceParams) MeteringService {
	return &meteringService{
		ServiceParams: params,
		tier:          NewTierService(params),
		usage:         NewUsageService(params),
	}
}

func (s *meteringService) Check(ctx context.Context, userID, orgID string) Decision {
	if userID == "" {
		return Decision{Outcome: OutcomeSkipped}
	}

	tier := s.tier.ResolveTier(ctx, userID, orgID)
	limit := s.tier.LimitFor(tier)

	record, err := s.UsageRepo.Get(ctx, userID, types.CurrentPeriod())
	if err != nil {
		s.Logger.Warnw("usage read failed, admitting by policy",
			"user_id", userID, "tier", tier, "error", err)
		return Decision{Outcome: OutcomeIndeterminate, Tier: tier, Limit: limit}
	}

	if record.Used >= limit {
		return Decision{
			Outcome: OutcomeRejected,
			Tier:    tier,
			Limit:   limit,
			Used:    record.Used,
		}
	}

	return Decision{
		Outcome: OutcomeAdmitted,
		Tier:    tier,
		Limit:   limit,
		Used:    record.Used,
	}
}

func (s *meteringService) RecordSuccess(ctx context.Context, userID string) {
	if userID == "" {
		return
	}

	if _, err := s.usage.Increment(ctx, userID, 1); err != nil {
		s.Logger.Warnw("failed to record usage, counter will undercount",
			"user_id", userID, "error", err)
	}
}
