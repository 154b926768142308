package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/bohselecta/luvler-metering/internal/api/dto"
	ierr "github.com/bohselecta/luvler-metering/internal/errors"
	"github.com/bohselecta/luvler-metering/internal/types"
)

// TierService resolves the effective tier for a caller and exposes the
// tier catalog with effective allowances
type TierService interface {
	// ResolveTier determines the single effective tier for a user. An
	// active organization record always wins over the user's own record;
	// absence of data and read failures both degrade to the free tier.
	// ResolveTier never fails a request.
	ResolveTier(ctx context.Context, userID, orgID string) types.Tier

	// LimitFor returns the effective monthly allowance for a tier after
	// applying config overrides
	LimitFor(tier types.Tier) int64

	ListTiers(ctx context.Context) (*dto.ListTiersResponse, error)
}

type tierService struct {
	ServiceParams
}

func NewTierService(params ServiceParams) TierService {
	return &tierService{
		ServiceParams: params,
	}
}

func (s *tierService) ResolveTier(ctx context.Context, userID, orgID string) types.Tier {
	if orgID != "" {
		record, err := s.BillingRepo.GetForOrg(ctx, orgID)
		if err != nil && !ierr.IsNotFound(err) {
			s.Logger.Warnw("org billing read failed, falling through",
				"org_id", orgID, "error", err)
		}
		if err == nil && record.Grants() {
			return record.Tier
		}
	}

	if userID == "" {
		return types.TierFree
	}

	record, err := s.BillingRepo.GetForUser(ctx, userID)
	if err != nil && !ierr.IsNotFound(err) {
		s.Logger.Warnw("user billing read failed, falling back to free",
			"user_id", userID, "error", err)
	}
	if err == nil && record.Grants() {
		return record.Tier
	}

	return types.TierFree
}

func (s *tierService) LimitFor(tier types.Tier) int64 {
	if s.Config != nil {
		if allowance, ok := s.Config.Tiers.Allowances[tier.String()]; ok && allowance > 0 {
			return allowance
		}
	}
	return types.LimitFor(tier)
}

func (s *tierService) ListTiers(_ context.Context) (*dto.ListTiersResponse, error) {
	items := lo.Map(types.TierCatalog(), func(def types.TierDefinition, _ int) *dto.TierResponse {
		return dto.ToTierResponse(def, s.LimitFor(def.ID))
	})

	return &dto.ListTiersResponse{
		Items: items,
		Total: len(items),
	}, nil
}
