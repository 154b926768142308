package service

import (
	"context"

	"github.com/bohselecta/luvler-metering/internal/api/dto"
	ierr "github.com/bohselecta/luvler-metering/internal/errors"
)

// BillingService is the administrative surface for assigning tiers to
// users and organizations
type BillingService interface {
	SetTierForUser(ctx context.Context, userID string, req dto.SetTierRequest) (*dto.SubscriptionResponse, error)
	SetTierForOrg(ctx context.Context, orgID string, req dto.SetTierRequest) (*dto.SubscriptionResponse, error)
	GetSubscriptionForUser(ctx context.Context, userID string) (*dto.SubscriptionResponse, error)
	GetSubscriptionForOrg(ctx context.Context, orgID string) (*dto.SubscriptionResponse, error)
}

type billingService struct {
	ServiceParams
	tier TierService
}

func NewBillingService(params ServiceParams) BillingService {
	return &billingService{
		ServiceParams: params,
		tier:          NewTierService(params),
	}
}

func (s *billingService) SetTierForUser(ctx context.Context, userID string, req dto.SetTierRequest) (*dto.SubscriptionResponse, error) {
	if userID == "" {
		return nil, ierr.NewError("user_id is required").
			WithHint("Please provide a user ID").
			Mark(ierr.ErrValidation)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record := req.ToBillingRecord("")
	if err := s.BillingRepo.SetForUser(ctx, userID, record); err != nil {
		return nil, err
	}

	s.Logger.Infow("tier assigned to user",
		"user_id", userID, "tier", record.Tier, "status", record.Status)

	return &dto.SubscriptionResponse{
		UserID:    userID,
		Tier:      record.Tier,
		Status:    record.Status,
		Limit:     s.tier.LimitFor(record.Tier),
		UpdatedAt: record.UpdatedAt,
	}, nil
}

func (s *billingService) SetTierForOrg(ctx context.Context, orgID string, req dto.SetTierRequest) (*dto.SubscriptionResponse, error) {
	if orgID == "" {
		return nil, ierr.NewError("org_id is required").
			WithHint("Please provide an organization ID").
			Mark(ierr.ErrValidation)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record := req.ToBillingRecord(orgID)
	if err := s.BillingRepo.SetForOrg(ctx, orgID, record); err != nil {
		return nil, err
	}

	s.Logger.Infow("tier assigned to org",
		"org_id", orgID, "tier", record.Tier, "status", record.Status)

	return &dto.SubscriptionResponse{
		OrgID:     orgID,
		Tier:      record.Tier,
		Status:    record.Status,
		Limit:     s.tier.LimitFor(record.Tier),
		UpdatedAt: record.UpdatedAt,
	}, nil
}

func (s *billingService) GetSubscriptionForUser(ctx context.Context, userID string) (*dto.SubscriptionResponse, error) {
	if userID == "" {
		return nil, ierr.NewError("user_id is required").
			WithHint("Please provide a user ID").
			Mark(ierr.ErrValidation)
	}

	record, err := s.BillingRepo.GetForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.SubscriptionResponse{
		UserID:    userID,
		Tier:      record.Tier,
		Status:    record.Status,
		Limit:     s.tier.LimitFor(record.Tier),
		UpdatedAt: record.UpdatedAt,
	}, nil
}

func (s *billingService) GetSubscriptionForOrg(ctx context.Context, orgID string) (*dto.SubscriptionResponse, error) {
	if orgID == "" {
		return nil, ierr.NewError("org_id is required").
			WithHint("Please provide an organization ID").
			Mark(ierr.ErrValidation)
	}

	record, err := s.BillingRepo.GetForOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}

	return &dto.SubscriptionResponse{
		OrgID:     orgID,
		Tier:      record.Tier,
		Status:    record.Status,
		Limit:     s.tier.LimitFor(record.Tier),
		UpdatedAt: record.UpdatedAt,
	}, nil
}
